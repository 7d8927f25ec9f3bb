package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

func info(format string, args ...interface{}) {
	color.Cyan(format, args...)
}

func warn(format string, args ...interface{}) {
	color.Yellow(format, args...)
}

func fatal(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(1)
}

func tracef(format string, args ...interface{}) {
	log.Output(2, fmt.Sprintf(format, args...))
}
