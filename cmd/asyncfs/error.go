package main

import "errors"

var (
	// ErrNoCommand occurs when the program is invoked without a command.
	ErrNoCommand = errors.New("no command given")

	// ErrUnknownCommand occurs when the given command is not implemented.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrWrongArguments occurs when a command receives the wrong number of
	// arguments.
	ErrWrongArguments = errors.New("wrong arguments")
)
