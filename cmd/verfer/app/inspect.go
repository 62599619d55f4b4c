package app

import (
	"encoding/hex"

	"github.com/spf13/cobra"
	"github.com/storacha/go-verfer/core/matter"
	"github.com/storacha/go-verfer/principal"
	"github.com/storacha/go-verfer/principal/verifier"
	"lukechampine.com/blake3"
)

func (a *app) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <key>",
		Short: "Decode a verification key and print its encodings",
		Long: `Decode a verification key given as qb64 or did:key and print its
derivation code, algorithm and every encoding of it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parseKey(args[0])
			if err != nil {
				return err
			}
			fields, err := describe(v)
			if err != nil {
				return err
			}
			if a.v.GetBool("digest") {
				d, err := digest(v)
				if err != nil {
					return err
				}
				fields = append(fields, field{"digest", d})
			}
			return render(a.out, a.v.GetString("output"), fields)
		},
	}
	cmd.Flags().Bool("digest", false, "also print the Blake3-256 digest primitive of the qb64 key")
	cmd.Flags().Bool("transferable", false, "tag did:key input as transferable")
	return cmd
}

// parseKey parses qb64 or did:key input into a verifier.
func (a *app) parseKey(str string) (*verifier.Verifier, error) {
	parser := principal.NewComposedParser(
		principal.QB64Parser{},
		principal.DIDKeyParser{Transferable: a.v.GetBool("transferable")},
	)
	p, err := parser.Parse(str)
	if err != nil {
		return nil, err
	}
	// both parsers produce *verifier.Verifier
	v := p.(*verifier.Verifier)
	a.logger.Debug("parsed key", "code", string(v.Code()), "algorithm", v.Algorithm().String())
	return v, nil
}

func describe(v *verifier.Verifier) ([]field, error) {
	qb64, err := v.QB64()
	if err != nil {
		return nil, err
	}
	qb2, err := v.QB2()
	if err != nil {
		return nil, err
	}
	id, err := v.DID()
	if err != nil {
		return nil, err
	}
	return []field{
		{"code", string(v.Code())},
		{"name", matter.Name(v.Code())},
		{"algorithm", v.Algorithm().String()},
		{"transferable", v.Transferable()},
		{"raw", hex.EncodeToString(v.Raw())},
		{"qb64", qb64},
		{"qb2", hex.EncodeToString(qb2)},
		{"did", id.String()},
	}, nil
}

// digest returns the qb64 Blake3-256 digest primitive of the key's qb64b.
func digest(v *verifier.Verifier) (string, error) {
	qb64b, err := v.QB64B()
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(qb64b)
	m, err := matter.New(matter.Blake3_256, sum[:])
	if err != nil {
		return "", err
	}
	return m.QB64()
}
