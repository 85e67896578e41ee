package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params captures the tunable parameters of the Argon2id algorithm.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follows the OWASP recommendation for interactive logins:
// 64 MiB of memory, 3 passes, 2 lanes.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher hashes and verifies passwords with Argon2id. The zero value is not
// usable; construct via [NewHasher]. A Hasher is immutable and safe for
// concurrent use.
type Hasher struct {
	params Argon2Params
}

// NewHasher constructs a Hasher with the given parameters. Zero-valued
// fields fall back to [DefaultArgon2Params].
func NewHasher(params Argon2Params) *Hasher {
	if params.Memory == 0 {
		params.Memory = DefaultArgon2Params.Memory
	}
	if params.Iterations == 0 {
		params.Iterations = DefaultArgon2Params.Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = DefaultArgon2Params.Parallelism
	}
	if params.SaltLength == 0 {
		params.SaltLength = DefaultArgon2Params.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = DefaultArgon2Params.KeyLength
	}

	return &Hasher{params: params}
}

// Hash derives an Argon2id digest of password under a fresh random salt and
// returns it in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<b64 salt>$<b64 key>
//
// Two calls with the same password produce different strings. A salt
// generation failure is returned, never swallowed: continuing without a salt
// would amount to storing a reversible credential.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify reports whether password matches the PHC-encoded digest. The salt
// and parameters are extracted from the encoded string itself, so hashes
// produced under older parameter sets keep verifying. Digest comparison is
// constant-time via crypto/subtle.
//
// A malformed encoded string yields false; verification never fails loudly
// on bad stored data.
func (h *Hasher) Verify(password, encoded string) bool {
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, derived) == 1
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2id version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2id salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2id key: %w", err)
	}

	return params, salt, key, nil
}
