package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
)

// Value types accepted by --type.
const (
	typeObject = "object"
	typeJSON   = "json"
	typeBool   = "bool"
	typeInt    = "int"
)

// snapshotter is implemented by both the real and the mock store.
type snapshotter interface {
	Snapshot() map[string]model.Value
}

func newGetCmd() *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			key := args[0]

			switch valueType {
			case typeObject, typeJSON:
				return printObject(cmd, store.Object(key), valueType == typeJSON)
			case typeBool:
				fmt.Fprintln(cmd.OutOrStdout(), store.Bool(key))
			case typeInt:
				fmt.Fprintln(cmd.OutOrStdout(), store.Integer(key))
			default:
				return fmt.Errorf("%w: type %q", preferr.UnsupportedValue, valueType)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&valueType, "type", "t", typeObject, "Value type (object, json, bool, int)")

	return cmd
}

func newSetCmd() *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "set [flags] <key> <value>",
		Short: "Store a preference and synchronize",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if key == "" {
				return preferr.KeyEmpty
			}

			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			switch valueType {
			case typeObject:
				store.SetObject(key, raw)
			case typeJSON:
				var v interface{}
				if err := json.Unmarshal([]byte(raw), &v); err != nil {
					return fmt.Errorf("parsing %q as json: %w", raw, err)
				}
				store.SetObject(key, v)
			case typeBool:
				b, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("parsing %q as bool: %w", raw, err)
				}
				store.SetBool(key, b)
			case typeInt:
				i, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("parsing %q as int: %w", raw, err)
				}
				store.SetInteger(key, i)
			default:
				return fmt.Errorf("%w: type %q", preferr.UnsupportedValue, valueType)
			}

			return store.Synchronize()
		},
	}

	cmd.Flags().StringVarP(&valueType, "type", "t", typeObject, "Value type (object, json, bool, int)")
	// Flags must precede the key so values such as -3 stay positional.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>...",
		Aliases: []string{"remove"},
		Short:   "Remove preferences and synchronize",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			for _, key := range args {
				store.Remove(key)
			}

			return store.Synchronize()
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every preference with its kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			s, ok := store.(snapshotter)
			if !ok {
				return fmt.Errorf("%w: store cannot be listed", preferr.InvalidBackendType)
			}

			values := s.Snapshot()
			keys := maps.Keys(values)
			slices.Sort(keys)

			for _, key := range keys {
				v := values[key]

				payload, err := json.Marshal(v.Payload())
				if err != nil {
					return fmt.Errorf("%w: %s: %v", preferr.UnsupportedValue, key, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", key, v.Kind(), payload)
			}

			return nil
		},
	}
}

// printObject prints strings verbatim unless asJSON is set; anything else
// is printed as JSON.
func printObject(cmd *cobra.Command, v interface{}, asJSON bool) error {
	if s, ok := v.(string); ok && !asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}

	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", preferr.UnsupportedValue, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
