package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_kdfkit() {
    local cur prev words cword
    _init_completion || return

    local commands="derive enroll verify rotate ls rm keyring selftest completion help"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        derive)
            COMPREPLY=($(compgen -W "-salt -iterations -length -hash -format" -- "$cur"))
            ;;
        enroll)
            COMPREPLY=($(compgen -W "-db -iterations -length -hash -salt-length" -- "$cur"))
            ;;
        verify|rm)
            COMPREPLY=($(compgen -W "-db" -- "$cur"))
            ;;
        rotate)
            COMPREPLY=($(compgen -W "-db -iterations -length -hash" -- "$cur"))
            ;;
        ls)
            COMPREPLY=($(compgen -W "-db" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save forget" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
    esac
}
complete -F _kdfkit kdfkit
`

const zshCompletion = `#compdef kdfkit

_kdfkit() {
    local -a commands
    commands=(
        'derive:Derive a key from a password'
        'enroll:Create a password-verification record'
        'verify:Check a password against a record'
        'rotate:Change the password behind a record'
        'ls:List enrolled records'
        'rm:Remove records'
        'keyring:Manage cached passwords in the OS keyring'
        'selftest:Run the published PBKDF2 test vectors'
        'completion:Generate shell completions'
        'help:Show help for a command'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        keyring)
            _values 'action' save forget
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        help)
            _describe 'command' commands
            ;;
    esac
}

_kdfkit "$@"
`

const fishCompletion = `complete -c kdfkit -f
complete -c kdfkit -n '__fish_use_subcommand' -a derive -d 'Derive a key from a password'
complete -c kdfkit -n '__fish_use_subcommand' -a enroll -d 'Create a password-verification record'
complete -c kdfkit -n '__fish_use_subcommand' -a verify -d 'Check a password against a record'
complete -c kdfkit -n '__fish_use_subcommand' -a rotate -d 'Change the password behind a record'
complete -c kdfkit -n '__fish_use_subcommand' -a ls -d 'List enrolled records'
complete -c kdfkit -n '__fish_use_subcommand' -a rm -d 'Remove records'
complete -c kdfkit -n '__fish_use_subcommand' -a keyring -d 'Manage cached passwords in the OS keyring'
complete -c kdfkit -n '__fish_use_subcommand' -a selftest -d 'Run the published PBKDF2 test vectors'
complete -c kdfkit -n '__fish_use_subcommand' -a completion -d 'Generate shell completions'
complete -c kdfkit -n '__fish_use_subcommand' -a help -d 'Show help for a command'
complete -c kdfkit -n '__fish_seen_subcommand_from keyring' -a 'save forget'
complete -c kdfkit -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
