package types

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	cc "github.com/interlock-labs/crypto-conditions.go/conditions"
)

// ThresholdSha256Bit is the type bit of the threshold compound family.
const ThresholdSha256Bit = 0x08

func init() {
	cc.RegisterType(ThresholdSha256Bit, func() cc.Fulfillment { return &ThresholdSha256{} })
}

// WeightedCondition is a threshold constituent present only as a
// commitment: the condition stands in for any fulfillment that would
// satisfy it.
type WeightedCondition struct {
	Weight    uint32
	Condition *cc.Condition
}

// WeightedFulfillment is a threshold constituent with its proof
// attached.
type WeightedFulfillment struct {
	Weight      uint32
	Fulfillment cc.Fulfillment
}

// ThresholdSha256 is the weighted t-of-n compound: the condition
// commits to a threshold and a set of weighted sub-conditions, and a
// fulfillment discharges it by supplying valid sub-fulfillments whose
// weights reach the threshold. Unmet constituents stay as conditions.
type ThresholdSha256 struct {
	Threshold       uint32
	SubConditions   []WeightedCondition
	SubFulfillments []WeightedFulfillment
}

// NewThresholdSha256 constructs a threshold compound.
func NewThresholdSha256(threshold uint32) *ThresholdSha256 {
	return &ThresholdSha256{Threshold: threshold}
}

// AddSubFulfillment appends a constituent with its fulfillment.
func (f *ThresholdSha256) AddSubFulfillment(weight uint32, sub cc.Fulfillment) {
	f.SubFulfillments = append(f.SubFulfillments, WeightedFulfillment{Weight: weight, Fulfillment: sub})
}

// AddSubCondition appends a constituent known only by its condition.
func (f *ThresholdSha256) AddSubCondition(weight uint32, sub *cc.Condition) {
	f.SubConditions = append(f.SubConditions, WeightedCondition{Weight: weight, Condition: sub})
}

// TypeBit returns 0x08.
func (f *ThresholdSha256) TypeBit() uint32 { return ThresholdSha256Bit }

// Bitmask combines the family bit with every constituent's mask.
func (f *ThresholdSha256) Bitmask() uint32 {
	mask := uint32(ThresholdSha256Bit)
	for _, wc := range f.SubConditions {
		mask = cc.CombineMasks(mask, wc.Condition.Bitmask)
	}
	for _, wf := range f.SubFulfillments {
		mask = cc.CombineMasks(mask, wf.Fulfillment.Bitmask())
	}
	return mask
}

// WritePayload writes the threshold, the weighted condition list, then
// the weighted fulfillment list, each entry length-prefixed.
func (f *ThresholdSha256) WritePayload(w cc.Writer) error {
	if err := w.WriteVarUInt(uint64(f.Threshold)); err != nil {
		return err
	}
	if err := w.WriteVarUInt(uint64(len(f.SubConditions))); err != nil {
		return err
	}
	for _, wc := range f.SubConditions {
		if wc.Condition == nil {
			return errors.New("threshold subcondition is nil")
		}
		if err := w.WriteVarUInt(uint64(wc.Weight)); err != nil {
			return err
		}
		if err := w.WriteVarOctetString(wc.Condition.SerializeBinary()); err != nil {
			return err
		}
	}
	if err := w.WriteVarUInt(uint64(len(f.SubFulfillments))); err != nil {
		return err
	}
	for _, wf := range f.SubFulfillments {
		if wf.Fulfillment == nil {
			return errors.New("threshold subfulfillment is nil")
		}
		if err := w.WriteVarUInt(uint64(wf.Weight)); err != nil {
			return err
		}
		sub, err := cc.SerializeBinary(wf.Fulfillment)
		if err != nil {
			return err
		}
		if err := w.WriteVarOctetString(sub); err != nil {
			return err
		}
	}
	return nil
}

// ParsePayload reads the threshold and both constituent lists,
// recursively parsing embedded sub-fulfillments through the registry.
func (f *ThresholdSha256) ParsePayload(r *cc.Reader) error {
	threshold, err := r.ReadVarUInt()
	if err != nil {
		return err
	}
	if threshold > 0xffffffff {
		return cc.ErrMaskOutOfRange
	}
	nConds, err := readCount(r)
	if err != nil {
		return err
	}
	conds := make([]WeightedCondition, 0, nConds)
	for i := 0; i < nConds; i++ {
		weight, err := readWeight(r)
		if err != nil {
			return err
		}
		condBytes, err := r.ReadVarOctetString()
		if err != nil {
			return err
		}
		cond, err := cc.ParseConditionBinary(condBytes)
		if err != nil {
			return err
		}
		conds = append(conds, WeightedCondition{Weight: weight, Condition: cond})
	}
	nFuls, err := readCount(r)
	if err != nil {
		return err
	}
	fuls := make([]WeightedFulfillment, 0, nFuls)
	for i := 0; i < nFuls; i++ {
		weight, err := readWeight(r)
		if err != nil {
			return err
		}
		subBytes, err := r.ReadVarOctetString()
		if err != nil {
			return err
		}
		sub, err := cc.ReadEmbeddedFulfillment(r, subBytes)
		if err != nil {
			return err
		}
		fuls = append(fuls, WeightedFulfillment{Weight: weight, Fulfillment: sub})
	}
	f.Threshold = uint32(threshold)
	f.SubConditions = conds
	f.SubFulfillments = fuls
	return nil
}

// readCount reads a list length and bounds it by the bytes remaining,
// so an adversarial count cannot force a huge allocation. Every entry
// occupies at least one byte.
func readCount(r *cc.Reader) (int, error) {
	n, err := r.ReadVarUInt()
	if err != nil {
		return 0, err
	}
	if n > uint64(r.Len()) {
		return 0, cc.ErrShortBytes
	}
	return int(n), nil
}

func readWeight(r *cc.Reader) (uint32, error) {
	w, err := r.ReadVarUInt()
	if err != nil {
		return 0, err
	}
	if w > 0xffffffff {
		return 0, cc.ErrMaskOutOfRange
	}
	return uint32(w), nil
}

// weightedCondBinary is a constituent reduced to its commitment form
// for hashing and length prediction.
type weightedCondBinary struct {
	weight uint32
	cond   *cc.Condition
	bin    []byte
}

// constituents reduces every entry, fulfilled or not, to its weighted
// condition binary.
func (f *ThresholdSha256) constituents() ([]weightedCondBinary, error) {
	out := make([]weightedCondBinary, 0, len(f.SubConditions)+len(f.SubFulfillments))
	for _, wc := range f.SubConditions {
		if wc.Condition == nil {
			return nil, errors.New("threshold subcondition is nil")
		}
		out = append(out, weightedCondBinary{wc.Weight, wc.Condition, wc.Condition.SerializeBinary()})
	}
	for _, wf := range f.SubFulfillments {
		if wf.Fulfillment == nil {
			return nil, errors.New("threshold subfulfillment is nil")
		}
		cond, err := cc.DeriveCondition(wf.Fulfillment)
		if err != nil {
			return nil, err
		}
		out = append(out, weightedCondBinary{wf.Weight, cond, cond.SerializeBinary()})
	}
	return out, nil
}

// GenerateHash returns SHA-256 over a canonical encoding of the
// threshold and the weighted sub-condition fingerprints, sorted by
// condition binary so the digest does not depend on which constituents
// happen to carry fulfillments or on insertion order.
func (f *ThresholdSha256) GenerateHash() ([]byte, error) {
	entries, err := f.constituents()
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := bytes.Compare(entries[i].bin, entries[j].bin); c != 0 {
			return c < 0
		}
		return entries[i].weight < entries[j].weight
	})
	b := cc.AppendUint32(nil, f.Threshold)
	b = cc.AppendVarUInt(b, uint64(len(entries)))
	for _, e := range entries {
		b = cc.AppendVarUInt(b, uint64(e.weight))
		b = cc.AppendVarOctetString(b, e.bin)
	}
	h := sha256.Sum256(b)
	return h[:], nil
}

// CalculateMaxFulfillmentLength bounds the payload over every legal way
// to discharge the condition: each constituent may appear either as its
// condition binary or as any sub-fulfillment within its max length,
// whichever is larger.
func (f *ThresholdSha256) CalculateMaxFulfillmentLength() (int, error) {
	entries, err := f.constituents()
	if err != nil {
		return 0, err
	}
	total := cc.VarUIntSize(uint64(f.Threshold))
	// Both list length fields, at their widest split.
	total += 2 * cc.VarUIntSize(uint64(len(entries)))
	for _, e := range entries {
		asCond := cc.VarOctetStringSize(len(e.bin))
		worstFul := cc.VarUIntSize(uint64(e.cond.Bitmask)) + e.cond.MaxFulfillmentLength
		asFul := cc.VarOctetStringSize(worstFul)
		entry := cc.VarUIntSize(uint64(e.weight))
		if asFul > asCond {
			entry += asFul
		} else {
			entry += asCond
		}
		total += entry
	}
	return total, nil
}

// Validate succeeds when the weights of the valid sub-fulfillments
// reach the threshold. Invalid sub-fulfillments contribute nothing but
// do not fail the compound on their own.
func (f *ThresholdSha256) Validate(message []byte) error {
	var weight uint64
	for _, wf := range f.SubFulfillments {
		if wf.Fulfillment == nil {
			continue
		}
		if err := wf.Fulfillment.Validate(message); err == nil {
			weight += uint64(wf.Weight)
		}
	}
	if weight < uint64(f.Threshold) {
		return fmt.Errorf("threshold not met: weight %d of %d", weight, f.Threshold)
	}
	return nil
}
