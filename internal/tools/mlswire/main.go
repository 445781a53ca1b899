package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/mlsroster/compliance"
	"xdao.co/mlsroster/credential"
	"xdao.co/mlsroster/roster"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "usage: mlswire <credential|roster> <file.hex>")
		return 2
	}
	kind, path := args[0], args[1]
	if kind != "credential" && kind != "roster" {
		fmt.Fprintf(errOut, "unknown kind: %s\n", kind)
		return 2
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		fmt.Fprintf(errOut, "hex: %v\n", err)
		return 1
	}

	opts := credential.DecodeOptions{Mode: compliance.Strict}
	var id fmt.Stringer
	switch kind {
	case "credential":
		c, err := credential.Unmarshal(b, opts)
		if err != nil {
			fmt.Fprintf(errOut, "parse: %s %v\n", credential.RuleID(err), err)
			return 1
		}
		cid, err := c.CID()
		if err != nil {
			fmt.Fprintf(errOut, "cid: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, c)
		id = cid
	case "roster":
		r, err := roster.Unmarshal(b, opts)
		if err != nil {
			fmt.Fprintf(errOut, "parse: %s %v\n", credential.RuleID(err), err)
			return 1
		}
		cid, err := r.CID()
		if err != nil {
			fmt.Fprintf(errOut, "cid: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "roster(%d slots, %d occupied)\n", r.Len(), r.Occupied())
		for i := 0; i < r.Len(); i++ {
			if c, ok := r.At(i); ok {
				fmt.Fprintf(out, "  [%d] %s\n", i, c)
			} else {
				fmt.Fprintf(out, "  [%d] blank\n", i)
			}
		}
		id = cid
	}
	fmt.Fprintln(out, id.String())
	return 0
}
