// Package password hashea y verifica passwords. Los hashes nuevos son argon2id en formato
// PHC ($argon2id$v=19$m=...,t=...,p=...$salt$hash); también verifica hashes bcrypt importados.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash el hash almacenado no tiene un formato reconocido.
var ErrMalformedHash = errors.New("password: hash con formato inválido")

// Params parámetros de argon2id.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Límites aceptados al verificar un hash almacenado; fuera de ellos el hash se trata como corrupto.
const (
	maxMemoryKiB  = 1 << 20 // 1 GiB
	maxIterations = 64
	maxKeyLength  = 1024
)

// DefaultParams recomendación OWASP para argon2id (19 MiB, 2 pasadas).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash genera el hash de plain con DefaultParams.
func Hash(plain string) (string, error) {
	return HashWithParams(plain, DefaultParams)
}

// HashWithParams genera el hash de plain con sal aleatoria.
func HashWithParams(plain string, p Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generar sal: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compara plain contra el hash almacenado en tiempo constante.
// Un password incorrecto devuelve (false, nil); error solo si el hash está corrupto.
func Verify(plain, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2id(plain, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("password: bcrypt: %w", err)
		}
		return true, nil
	default:
		return false, ErrMalformedHash
	}
}

func verifyArgon2id(plain, encoded string) (bool, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return false, ErrMalformedHash
	}
	// argon2.IDKey entra en pánico con t=0 o p=0 y reserva m KiB sin tope
	if p.Iterations == 0 || p.Iterations > maxIterations || p.Parallelism == 0 ||
		p.Memory == 0 || p.Memory > maxMemoryKiB {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > maxKeyLength {
		return false, ErrMalformedHash
	}
	got := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// Hasher hashea con parámetros fijos; implementa el puerto de hashing de la capa de aplicación.
type Hasher struct {
	params Params
}

// NewHasher construye un Hasher con los parámetros indicados.
func NewHasher(p Params) *Hasher {
	return &Hasher{params: p}
}

// Hash genera el hash de plain.
func (h *Hasher) Hash(plain string) (string, error) {
	return HashWithParams(plain, h.params)
}

// Verify compara plain contra encoded. Ver Verify.
func (h *Hasher) Verify(plain, encoded string) (bool, error) {
	return Verify(plain, encoded)
}
