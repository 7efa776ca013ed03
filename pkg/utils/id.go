package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID gera um identificador curto e legível para rascunhos
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, 12)
}
