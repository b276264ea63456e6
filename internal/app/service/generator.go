package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is the 62-symbol character set short codes are drawn from. With the
// default length of 8 that is 62^8 (~218 trillion) possible codes, keeping the
// birthday-collision probability negligible at any realistic link volume.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeGenerator produces random, URL-safe short codes. Codes are drawn from
// crypto/rand so the code space cannot be enumerated or predicted.
type CodeGenerator struct {
	length int
}

func NewCodeGenerator(length int) *CodeGenerator {
	return &CodeGenerator{length: length}
}

// Generate returns one candidate code. Uniqueness is not checked here: the
// store's unique index rejects duplicates atomically and the link service
// retries, which avoids the check-then-insert race entirely.
func (g *CodeGenerator) Generate() (string, error) {
	code := make([]byte, g.length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("generate random index: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
