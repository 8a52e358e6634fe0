package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shirosaki/kdfkit/cmd"
	"github.com/shirosaki/kdfkit/internal/kdf"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "derive":
		runDerive(ctx, os.Args[2:])
	case "enroll":
		runEnroll(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "rotate":
		runRotate(ctx, os.Args[2:])
	case "ls", "list":
		runList(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "selftest":
		runSelfTest(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runDerive(_ context.Context, args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	salt := fs.String("salt", "", "Salt, hex encoded (empty salt is legal but unsafe)")
	iterations := fs.Int("iterations", kdf.DefaultIterations, "PBKDF2 iteration count")
	length := fs.Int("length", kdf.DefaultLength, "Derived key length in bytes")
	hash := fs.String("hash", string(kdf.DefaultHash), "Digest algorithm for the HMAC core")
	format := fs.String("format", "hex", "Output format: hex, base64 or raw")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Derive(cmd.DeriveOptions{
		SaltHex:    *salt,
		Iterations: *iterations,
		Length:     *length,
		Hash:       *hash,
		Format:     *format,
	})
}

func runEnroll(_ context.Context, args []string) {
	fs := flag.NewFlagSet("enroll", flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	iterations := fs.Int("iterations", 0, "PBKDF2 iteration count (default 600000)")
	length := fs.Int("length", 0, "Derived value length in bytes (default: digest size)")
	hash := fs.String("hash", "", "Digest algorithm (default sha256)")
	saltLength := fs.Int("salt-length", 0, "Salt length in bytes (default 32)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit enroll [flags] <name>")
		os.Exit(1)
	}

	cmd.Enroll(fs.Arg(0), cmd.EnrollOptions{
		DBPath:     *db,
		Hash:       *hash,
		Iterations: *iterations,
		Length:     *length,
		SaltLength: *saltLength,
	})
}

func runVerify(_ context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit verify [flags] <name>")
		os.Exit(1)
	}

	cmd.Verify(fs.Arg(0), *db)
}

func runRotate(_ context.Context, args []string) {
	fs := flag.NewFlagSet("rotate", flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	iterations := fs.Int("iterations", 0, "New iteration count (default: keep current)")
	length := fs.Int("length", 0, "New derived value length (default: keep current)")
	hash := fs.String("hash", "", "New digest algorithm (default: keep current)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit rotate [flags] <name>")
		os.Exit(1)
	}

	cmd.Rotate(fs.Arg(0), cmd.RotateOptions{
		DBPath:     *db,
		Hash:       *hash,
		Iterations: *iterations,
		Length:     *length,
	})
}

func runList(_ context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.List(*db)
}

func runRm(_ context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Remove(*db, fs.Args())
}

func runKeyring(_ context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit keyring <save|forget> [flags] <name>")
		os.Exit(1)
	}

	action := args[0]
	fs := flag.NewFlagSet("keyring "+action, flag.ExitOnError)
	db := fs.String("db", cmd.DefaultDBPath(), "Record database path")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit keyring <save|forget> [flags] <name>")
		os.Exit(1)
	}

	switch action {
	case "save":
		cmd.KeyringSave(*db, fs.Arg(0))
	case "forget":
		cmd.KeyringForget(*db, fs.Arg(0))
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\n", action)
		os.Exit(1)
	}
}

func runSelfTest(_ context.Context, args []string) {
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.SelfTest()
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: kdfkit completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("kdfkit - PBKDF2-HMAC key derivation and password verification")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  kdfkit <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  derive      Derive a key from a password")
	fmt.Println("  enroll      Create a password-verification record")
	fmt.Println("  verify      Check a password against a record")
	fmt.Println("  rotate      Change the password behind a record")
	fmt.Println("  ls          List enrolled records")
	fmt.Println("  rm          Remove records")
	fmt.Println("  keyring     Manage cached passwords in the OS keyring")
	fmt.Println("  selftest    Run the published PBKDF2 test vectors")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  kdfkit derive -salt 73616c74 -iterations 600000 -length 32")
	fmt.Println("  kdfkit enroll backups            # Store a verification record")
	fmt.Println("  kdfkit verify backups            # Check a password against it")
	fmt.Println()
	fmt.Println("Use 'kdfkit help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "derive":
		fmt.Println("kdfkit derive [-salt <hex>] [-iterations N] [-length N] [-hash NAME] [-format hex|base64|raw]")
		fmt.Println()
		fmt.Println("Derives a key from a password using PBKDF2-HMAC (RFC 2898).")
		fmt.Println("The password is read from KDFKIT_PASSWORD or prompted without echo.")
		fmt.Println("The salt is a public value; pick a fresh random one per derived key.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -salt        Salt, hex encoded")
		fmt.Println("  -iterations  Iteration count; higher is slower and safer (default 600000)")
		fmt.Println("  -length      Derived key length in bytes (default 32)")
		fmt.Println("  -hash        Digest for the HMAC core (default sha256)")
		fmt.Println("  -format      Output encoding (default hex)")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  kdfkit derive -salt 73616c74 -length 16          # 128-bit cipher key")
		fmt.Println("  kdfkit derive -hash sha512 -format base64")
	case "enroll":
		fmt.Println("kdfkit enroll [-db <path>] [-iterations N] [-length N] [-hash NAME] [-salt-length N] <name>")
		fmt.Println()
		fmt.Println("Creates a password-verification record: a random salt plus the")
		fmt.Println("derived value, stored with its parameters. The password itself is")
		fmt.Println("never stored. Prompts twice unless KDFKIT_PASSWORD is set.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  kdfkit enroll backups")
		fmt.Println("  kdfkit enroll -hash sha512 -iterations 210000 backups")
	case "verify":
		fmt.Println("kdfkit verify [-db <path>] <name>")
		fmt.Println()
		fmt.Println("Re-derives with the record's stored parameters and compares the")
		fmt.Println("result in constant time. A password cached with 'kdfkit keyring")
		fmt.Println("save' is tried before prompting. Exits 1 on mismatch.")
	case "rotate":
		fmt.Println("kdfkit rotate [-db <path>] [-iterations N] [-length N] [-hash NAME] <name>")
		fmt.Println()
		fmt.Println("Changes the password behind a record. Requires the current")
		fmt.Println("password; always generates a fresh salt. Parameter flags default")
		fmt.Println("to the record's current values, so rotate can also raise an")
		fmt.Println("iteration count that has aged.")
	case "ls":
		fmt.Println("kdfkit ls [-db <path>]")
		fmt.Println()
		fmt.Println("Lists enrolled records with their derivation parameters.")
		fmt.Println("Does not require a password.")
	case "rm":
		fmt.Println("kdfkit rm [-db <path>] <name> [name...]")
		fmt.Println()
		fmt.Println("Removes records and any keyring passwords cached for them.")
	case "keyring":
		fmt.Println("kdfkit keyring <save|forget> [-db <path>] <name>")
		fmt.Println()
		fmt.Println("save   Verify a record's password and cache it in the OS keyring")
		fmt.Println("forget Remove the cached password")
	case "selftest":
		fmt.Println("kdfkit selftest")
		fmt.Println()
		fmt.Println("Runs the RFC 6070 and RFC 7914 PBKDF2 vectors against the")
		fmt.Println("derivation core and prints a diff of any mismatch. Exits 1 if")
		fmt.Println("any vector fails.")
	case "completion":
		fmt.Println("kdfkit completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(kdfkit completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(kdfkit completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  kdfkit completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
