package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_lexica_autocomplete() {
    local cur opts

    cur="${COMP_WORDS[COMP_CWORD]}"

    # ask lexica for the commands and flags valid at this position
    opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null )

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
}

complete -o default -F _lexica_autocomplete lexica
`

func bashCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script, f.ex. source <(lexica bash)",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(e.ui.Out, complete)
			return err
		},
	}
}
