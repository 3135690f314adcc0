package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DomainRun is the domain prefix for run identity.
// The version suffix allows the encoding to change without collisions.
const DomainRun = "cutoff/run/v" + FormatVersion

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeLabel returns label in NFC, the form RunID hashes. Labels are
// stored and queried in this form so equal IDs always mean equal labels.
func NormalizeLabel(label string) string {
	return norm.NFC.String(label)
}

// RunID computes the content-addressed ID of evaluating items under label
// with the given threshold. The same inputs always produce the same ID, so
// recording a run twice is a no-op.
func RunID(label string, items []int64, threshold int64) (string, error) {
	if items == nil {
		items = []int64{}
	}
	obj := map[string]any{
		"label":     label,
		"items":     items,
		"threshold": threshold,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("RunID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainRun, canonical), nil
}

// MustRunID is like RunID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRunID(label string, items []int64, threshold int64) string {
	id, err := RunID(label, items, threshold)
	if err != nil {
		panic(err)
	}
	return id
}
