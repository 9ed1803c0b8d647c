// Command condtool inspects, converts, and verifies crypto-conditions.
//
// It understands both the URI forms (cf:1:... fulfillments, cc:1:...
// conditions) and the binary form as hex, and can emit a decoded report
// as text, JSON, or CBOR for consumption by other tooling.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fxamacker/cbor/v2"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
	_ "github.com/interlock-labs/crypto-conditions.go/types"
)

// CLI defines the condtool command-line interface.
type CLI struct {
	Decode  DecodeCmd  `cmd:"" help:"Decode a cf:/cc: URI or hex binary and print a report."`
	Convert ConvertCmd `cmd:"" help:"Convert between URI and binary hex forms."`
	Verify  VerifyCmd  `cmd:"" help:"Verify a fulfillment against a condition and message."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("condtool"),
		kong.Description("Inspect, convert, and verify crypto-conditions."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// report is the decoded view of a condition or fulfillment, shaped for
// stable machine-readable output.
type report struct {
	Kind                 string `json:"kind" cbor:"kind"`
	TypeBit              uint32 `json:"typeBit,omitempty" cbor:"typeBit,omitempty"`
	Bitmask              uint32 `json:"bitmask" cbor:"bitmask"`
	Hash                 string `json:"hash" cbor:"hash"`
	MaxFulfillmentLength int    `json:"maxFulfillmentLength" cbor:"maxFulfillmentLength"`
	ConditionURI         string `json:"conditionUri" cbor:"conditionUri"`
	FulfillmentURI       string `json:"fulfillmentUri,omitempty" cbor:"fulfillmentUri,omitempty"`
	Binary               string `json:"binary" cbor:"binary"`
}

// DecodeCmd decodes one artifact and prints a report.
type DecodeCmd struct {
	Input  string `arg:"" help:"cf:/cc: URI, or hex binary (see --kind)."`
	Kind   string `help:"For hex input: condition or fulfillment." enum:"auto,condition,fulfillment" default:"auto"`
	Format string `short:"f" help:"Output format." enum:"text,json,cbor" default:"text"`
}

func (c *DecodeCmd) Run() error {
	rep, err := decodeInput(c.Input, c.Kind)
	if err != nil {
		return err
	}
	switch c.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "cbor":
		b, err := cbor.Marshal(rep)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(b))
		return nil
	default:
		fmt.Printf("kind:                   %s\n", rep.Kind)
		if rep.TypeBit != 0 {
			fmt.Printf("type bit:               0x%x\n", rep.TypeBit)
		}
		fmt.Printf("bitmask:                0x%x\n", rep.Bitmask)
		fmt.Printf("hash:                   %s\n", rep.Hash)
		fmt.Printf("max fulfillment length: %d\n", rep.MaxFulfillmentLength)
		fmt.Printf("condition uri:          %s\n", rep.ConditionURI)
		if rep.FulfillmentURI != "" {
			fmt.Printf("fulfillment uri:        %s\n", rep.FulfillmentURI)
		}
		fmt.Printf("binary:                 %s\n", rep.Binary)
		return nil
	}
}

func decodeInput(input, kind string) (*report, error) {
	switch {
	case strings.HasPrefix(input, "cf:"):
		f, err := cc.ParseFulfillmentURI(input)
		if err != nil {
			return nil, err
		}
		return fulfillmentReport(f)
	case strings.HasPrefix(input, "cc:"):
		cond, err := cc.ParseConditionURI(input)
		if err != nil {
			return nil, err
		}
		return conditionReport(cond), nil
	}
	b, err := hex.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("input is neither a cf:/cc: URI nor hex: %w", err)
	}
	switch kind {
	case "condition":
		cond, err := cc.ParseConditionBinary(b)
		if err != nil {
			return nil, err
		}
		return conditionReport(cond), nil
	case "fulfillment":
		f, err := cc.ParseFulfillmentBinary(b)
		if err != nil {
			return nil, err
		}
		return fulfillmentReport(f)
	default:
		// Try fulfillment first; its type bit is registered, which a
		// condition bitmask need not be.
		if f, err := cc.ParseFulfillmentBinary(b); err == nil {
			return fulfillmentReport(f)
		}
		cond, err := cc.ParseConditionBinary(b)
		if err != nil {
			return nil, fmt.Errorf("hex input parses as neither fulfillment nor condition: %w", err)
		}
		return conditionReport(cond), nil
	}
}

func fulfillmentReport(f cc.Fulfillment) (*report, error) {
	cond, err := cc.DeriveCondition(f)
	if err != nil {
		return nil, err
	}
	uri, err := cc.SerializeURI(f)
	if err != nil {
		return nil, err
	}
	bin, err := cc.SerializeBinary(f)
	if err != nil {
		return nil, err
	}
	return &report{
		Kind:                 "fulfillment",
		TypeBit:              f.TypeBit(),
		Bitmask:              cond.Bitmask,
		Hash:                 hex.EncodeToString(cond.Hash),
		MaxFulfillmentLength: cond.MaxFulfillmentLength,
		ConditionURI:         cond.SerializeURI(),
		FulfillmentURI:       uri,
		Binary:               hex.EncodeToString(bin),
	}, nil
}

func conditionReport(cond *cc.Condition) *report {
	return &report{
		Kind:                 "condition",
		Bitmask:              cond.Bitmask,
		Hash:                 hex.EncodeToString(cond.Hash),
		MaxFulfillmentLength: cond.MaxFulfillmentLength,
		ConditionURI:         cond.SerializeURI(),
		Binary:               hex.EncodeToString(cond.SerializeBinary()),
	}
}

// ConvertCmd converts URI input to binary hex and hex input to URI.
type ConvertCmd struct {
	Input string `arg:"" help:"cf:/cc: URI, or hex binary (see --kind)."`
	Kind  string `help:"For hex input: condition or fulfillment." enum:"auto,condition,fulfillment" default:"auto"`
}

func (c *ConvertCmd) Run() error {
	rep, err := decodeInput(c.Input, c.Kind)
	if err != nil {
		return err
	}
	if strings.HasPrefix(c.Input, "cf:") || strings.HasPrefix(c.Input, "cc:") {
		fmt.Println(rep.Binary)
		return nil
	}
	if rep.Kind == "fulfillment" {
		fmt.Println(rep.FulfillmentURI)
	} else {
		fmt.Println(rep.ConditionURI)
	}
	return nil
}

// VerifyCmd verifies a fulfillment URI against a condition URI and an
// optional message.
type VerifyCmd struct {
	Condition   string `arg:"" help:"cc:1:... condition URI."`
	Fulfillment string `arg:"" help:"cf:1:... fulfillment URI."`
	Message     string `short:"m" help:"Message the fulfillment is validated against." default:""`
	MessageHex  bool   `help:"Interpret --message as hex."`
}

func (c *VerifyCmd) Run() error {
	cond, err := cc.ParseConditionURI(c.Condition)
	if err != nil {
		return err
	}
	f, err := cc.ParseFulfillmentURI(c.Fulfillment)
	if err != nil {
		return err
	}
	message := []byte(c.Message)
	if c.MessageHex {
		message, err = hex.DecodeString(c.Message)
		if err != nil {
			return fmt.Errorf("bad --message hex: %w", err)
		}
	}
	if err := cc.VerifyFulfillment(cond, f, message); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	fmt.Println("ok")
	return nil
}
