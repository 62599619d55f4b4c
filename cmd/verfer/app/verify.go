package app

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/storacha/go-verfer/principal/signature"
	"github.com/storacha/go-verfer/principal/verifier"
)

func (a *app) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over a message",
		Long: `Verify a detached signature over a message with a verification key.
Exits 0 when the signature is valid, 1 when it is not and 2 when the inputs
could not be decoded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := a.v.GetString("key")
			if key == "" {
				return errors.New("must provide --key")
			}
			v, err := a.parseKey(key)
			if err != nil {
				return err
			}
			sig, err := decodeSignature(v, a.v.GetString("signature"), a.v.GetString("signature-encoding"))
			if err != nil {
				return err
			}
			msg, err := a.readMessage(cmd.InOrStdin())
			if err != nil {
				return err
			}

			ok, err := v.Verify(sig, msg)
			if err != nil {
				return err
			}
			a.logger.Info("verified signature", "key", v.String(), "valid", ok)

			result := "invalid"
			if ok {
				result = "valid"
			}
			if err := render(a.out, a.v.GetString("output"), []field{{"result", result}}); err != nil {
				return err
			}
			if !ok {
				return errInvalidSignature
			}
			return nil
		},
	}
	cmd.Flags().String("key", "", "verification key as qb64 or did:key")
	cmd.Flags().String("signature", "", "signature to verify")
	cmd.Flags().String("signature-encoding", "auto", "signature encoding: auto, qb64, hex or base64")
	cmd.Flags().String("message", "", "message that was signed")
	cmd.Flags().String("message-file", "", "file holding the message that was signed, - for stdin")
	cmd.Flags().Bool("transferable", false, "tag did:key input as transferable")
	return cmd
}

func (a *app) readMessage(stdin io.Reader) ([]byte, error) {
	msg := a.v.GetString("message")
	path := a.v.GetString("message-file")
	switch {
	case msg != "" && path != "":
		return nil, errors.New("cannot provide both --message and --message-file")
	case path == "-":
		return io.ReadAll(stdin)
	case path != "":
		return os.ReadFile(path)
	case msg != "":
		return []byte(msg), nil
	default:
		return nil, errors.New("must provide --message or --message-file")
	}
}

func decodeSignature(v *verifier.Verifier, sig, encoding string) ([]byte, error) {
	if sig == "" {
		return nil, errors.New("must provide --signature")
	}
	switch encoding {
	case "qb64":
		s, err := signature.Parse(sig)
		if err != nil {
			return nil, err
		}
		if s.Algorithm() != v.Algorithm() {
			return nil, fmt.Errorf("signature code %s does not match key algorithm %s", s.Code(), v.Algorithm())
		}
		return s.Raw(), nil
	case "hex":
		return hex.DecodeString(sig)
	case "base64":
		return base64.StdEncoding.DecodeString(sig)
	case "auto":
		for _, enc := range []string{"qb64", "hex", "base64"} {
			if b, err := decodeSignature(v, sig, enc); err == nil {
				return b, nil
			}
		}
		return nil, fmt.Errorf("could not decode signature %q as qb64, hex or base64", sig)
	default:
		return nil, fmt.Errorf("unknown signature encoding %q", encoding)
	}
}
