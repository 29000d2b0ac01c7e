package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-formc/internal/classfile"
)

func newDumpCmd() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "dump FILE.class",
		Short: "Disassemble the methods of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), data, method)
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "Only disassemble methods with this name")
	return cmd
}

func dump(w io.Writer, data []byte, method string) error {
	cf, err := classfile.Parse(data)
	if err != nil {
		return err
	}
	name, err := cf.Name()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "class %s", classfile.DottedName(name))
	if super, err := cf.SuperName(); err == nil && super != "" {
		fmt.Fprintf(w, " extends %s", classfile.DottedName(super))
	}
	fmt.Fprintln(w)

	found := false
	for _, m := range cf.Methods {
		mname, desc, err := cf.MemberInfo(m)
		if err != nil {
			return err
		}
		if method != "" && mname != method {
			continue
		}
		found = true
		fmt.Fprintf(w, "\n%s%s\n", bold(mname), desc)
		code, err := cf.Code(m)
		if err != nil {
			return fmt.Errorf("%s%s: %w", mname, desc, err)
		}
		if code == nil {
			fmt.Fprintln(w, "  no code")
			continue
		}
		if err := classfile.Disassemble(w, cf.Pool, code); err != nil {
			return fmt.Errorf("%s%s: %w", mname, desc, err)
		}
	}
	if method != "" && !found {
		return fmt.Errorf("%s has no method %s", classfile.DottedName(name), method)
	}
	return nil
}
