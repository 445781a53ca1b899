package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"xdao.co/mlsroster/cidutil"
	"xdao.co/mlsroster/compliance"
	"xdao.co/mlsroster/credential"
	"xdao.co/mlsroster/keys"
	"xdao.co/mlsroster/roster"
	"xdao.co/mlsroster/sigscheme"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "credential":
		return cmdCredential(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "roster":
		return cmdRoster(args[1:], out, errOut)
	case "schemes":
		return cmdSchemes(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "mlsroster: member credential and roster wire tool")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mlsroster schemes")
	fmt.Fprintln(w, "  mlsroster key generate --scheme <name>")
	fmt.Fprintln(w, "  mlsroster key derive --root-seed-hex <64hex> --identity <id>")
	fmt.Fprintln(w, "  mlsroster credential new --identity <id> (--seed-hex <64hex> | --root-seed-hex <64hex>)")
	fmt.Fprintln(w, "  mlsroster credential inspect [--mode permissive|strict] <file>")
	fmt.Fprintln(w, "  mlsroster roster build <credential-file|-> ...")
	fmt.Fprintln(w, "  mlsroster roster inspect [--mode permissive|strict] <file>")
	fmt.Fprintln(w, "  mlsroster roster compact <file>")
	fmt.Fprintln(w, "  mlsroster cid <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - files hold the hex wire encoding; surrounding whitespace is ignored")
	fmt.Fprintln(w, "  - credential new and roster build/compact print hex to stdout")
	fmt.Fprintln(w, "  - roster build treats '-' as a blank slot")
	fmt.Fprintln(w, "  - --seed-hex and --root-seed-hex must be 32 bytes (64 hex chars)")
}

func readHexFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("decode hex %s: %w", filepath.Base(path), err)
	}
	return b, nil
}

// describeErr prefixes structured errors with their rule id.
func describeErr(err error) string {
	if id := credential.RuleID(err); id != "" {
		return id + " " + err.Error()
	}
	return err.Error()
}

func cmdSchemes(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("schemes", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	for _, s := range sigscheme.List() {
		fmt.Fprintf(out, "0x%04x %s\n", uint16(s.ID()), s.Name())
	}
	return 0
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mlsroster cid <file>")
		return 2
	}
	b, err := readHexFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, cidutil.String(b))
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "generate":
		return cmdKeyGenerate(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mlsroster key generate --scheme <name>")
	fmt.Fprintln(w, "  mlsroster key derive --root-seed-hex <64hex> --identity <id>")
}

func cmdKeyGenerate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key generate", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var schemeName string
	fs.StringVar(&schemeName, "scheme", "ed25519", "Signature scheme name (see: mlsroster schemes)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	scheme, err := sigscheme.LookupName(schemeName)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --scheme: %v\n", err)
		return 2
	}
	signer, err := keys.Generate(scheme.ID(), rand.Reader)
	if err != nil {
		fmt.Fprintf(errOut, "generate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Scheme: %s\n", scheme.Name())
	fmt.Fprintf(out, "Public key: %s\n", hex.EncodeToString(signer.PublicKey()))
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var rootHex string
	var identity string
	fs.StringVar(&rootHex, "root-seed-hex", "", "Root seed as 64 hex chars")
	fs.StringVar(&identity, "identity", "", "Member identity")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if rootHex == "" {
		fmt.Fprintln(errOut, "missing --root-seed-hex")
		return 2
	}
	if identity == "" {
		fmt.Fprintln(errOut, "missing --identity")
		return 2
	}
	root, err := keys.ParseSeedHex(rootHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --root-seed-hex: %v\n", err)
		return 2
	}
	seed, err := keys.DeriveMemberSeed(root, []byte(identity))
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}
	signer, err := keys.Ed25519FromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Identity: %s\n", credential.Identity(identity))
	fmt.Fprintf(out, "Public key: %s\n", hex.EncodeToString(signer.PublicKey()))
	return 0
}

func cmdCredential(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: mlsroster credential <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: new, inspect")
		return 2
	}
	switch args[0] {
	case "new":
		return cmdCredentialNew(args[1:], out, errOut)
	case "inspect":
		return cmdCredentialInspect(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown credential subcommand: %s\n", args[0])
		return 2
	}
}

func cmdCredentialNew(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("credential new", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var identity string
	var seedHex string
	var rootHex string
	fs.StringVar(&identity, "identity", "", "Member identity")
	fs.StringVar(&seedHex, "seed-hex", "", "ed25519 seed as 64 hex chars")
	fs.StringVar(&rootHex, "root-seed-hex", "", "Root seed; the member seed is derived from it and --identity")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if identity == "" {
		fmt.Fprintln(errOut, "missing --identity")
		return 2
	}
	if (seedHex == "") == (rootHex == "") {
		fmt.Fprintln(errOut, "exactly one of --seed-hex or --root-seed-hex is required")
		return 2
	}

	var seed []byte
	if seedHex != "" {
		var err error
		seed, err = keys.ParseSeedHex(seedHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
	} else {
		root, err := keys.ParseSeedHex(rootHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --root-seed-hex: %v\n", err)
			return 2
		}
		seed, err = keys.DeriveMemberSeed(root, []byte(identity))
		if err != nil {
			fmt.Fprintf(errOut, "derive: %v\n", err)
			return 1
		}
	}

	signer, err := keys.Ed25519FromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "key: %v\n", err)
		return 1
	}
	c := credential.NewBasic(credential.Identity(identity), signer.Scheme(), signer.PublicKey())
	enc, err := c.MarshalBinary()
	if err != nil {
		fmt.Fprintf(errOut, "encode: %s\n", describeErr(err))
		return 1
	}
	_, _ = fmt.Fprintln(out, hex.EncodeToString(enc))
	return 0
}

func parseModeFlag(fs *flag.FlagSet, args []string, errOut io.Writer) (compliance.Mode, bool) {
	var modeStr string
	fs.StringVar(&modeStr, "mode", "permissive", "Decode mode: permissive|strict")
	if err := fs.Parse(args); err != nil {
		return compliance.Permissive, false
	}
	mode, err := compliance.ParseMode(modeStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --mode: %v\n", err)
		return compliance.Permissive, false
	}
	return mode, true
}

func cmdCredentialInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("credential inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)
	mode, ok := parseModeFlag(fs, args, errOut)
	if !ok {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mlsroster credential inspect [--mode permissive|strict] <file>")
		return 2
	}
	b, err := readHexFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	c, err := credential.Unmarshal(b, credential.DecodeOptions{Mode: mode})
	if err != nil {
		fmt.Fprintf(errOut, "decode: %s\n", describeErr(err))
		return 1
	}
	fmt.Fprintf(out, "Type: %s\n", c.Type())
	if basic, ok := c.Basic(); ok {
		fmt.Fprintf(out, "Identity: %s\n", basic.Identity)
		fmt.Fprintf(out, "Scheme: %s\n", basic.Scheme.ID())
		fmt.Fprintf(out, "Public key: %s\n", basic.PublicKey)
	}
	if cert, ok := c.X509(); ok {
		fmt.Fprintf(out, "Certificate: %d bytes\n", len(cert))
	}
	fmt.Fprintf(out, "CID: %s\n", cidutil.String(b))
	return 0
}

func cmdRoster(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: mlsroster roster <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: build, inspect, compact")
		return 2
	}
	switch args[0] {
	case "build":
		return cmdRosterBuild(args[1:], out, errOut)
	case "inspect":
		return cmdRosterInspect(args[1:], out, errOut)
	case "compact":
		return cmdRosterCompact(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown roster subcommand: %s\n", args[0])
		return 2
	}
}

func cmdRosterBuild(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("roster build", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	r := roster.New()
	for i, path := range fs.Args() {
		if path == "-" {
			r.Set(i, credential.Credential{})
			continue
		}
		b, err := readHexFile(path)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		c, err := credential.Unmarshal(b, credential.DecodeOptions{})
		if err != nil {
			fmt.Fprintf(errOut, "slot %d: %s\n", i, describeErr(err))
			return 1
		}
		r.Set(i, c)
	}
	return printRoster(r, out, errOut)
}

func printRoster(r *roster.Roster, out io.Writer, errOut io.Writer) int {
	enc, err := r.MarshalBinary()
	if err != nil {
		fmt.Fprintf(errOut, "encode: %s\n", describeErr(err))
		return 1
	}
	_, _ = fmt.Fprintln(out, hex.EncodeToString(enc))
	return 0
}

func cmdRosterInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("roster inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)
	mode, ok := parseModeFlag(fs, args, errOut)
	if !ok {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mlsroster roster inspect [--mode permissive|strict] <file>")
		return 2
	}
	b, err := readHexFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	r, err := roster.Unmarshal(b, credential.DecodeOptions{Mode: mode})
	if err != nil {
		fmt.Fprintf(errOut, "decode: %s\n", describeErr(err))
		return 1
	}
	fmt.Fprintf(out, "Slots: %d (%d occupied)\n", r.Len(), r.Occupied())
	for i := 0; i < r.Len(); i++ {
		c, ok := r.At(i)
		if !ok {
			fmt.Fprintf(out, "  [%d] blank\n", i)
			continue
		}
		fmt.Fprintf(out, "  [%d] %s\n", i, c)
	}
	fmt.Fprintf(out, "CID: %s\n", cidutil.String(b))
	return 0
}

func cmdRosterCompact(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("roster compact", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mlsroster roster compact <file>")
		return 2
	}
	b, err := readHexFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	r, err := roster.Unmarshal(b, credential.DecodeOptions{})
	if err != nil {
		fmt.Fprintf(errOut, "decode: %s\n", describeErr(err))
		return 1
	}
	r.TruncateToLastNonblank()
	return printRoster(r, out, errOut)
}
