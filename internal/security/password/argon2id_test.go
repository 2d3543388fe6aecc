package password_test

import (
	"strings"
	"testing"

	"github.com/dropDatabas3/comanda/internal/security/password"
)

// Parámetros bajos para que la suite no tarde; el formato es el mismo.
var fast = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashVerify_Roundtrip(t *testing.T) {
	phc, err := password.Hash(fast, "secreto123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("formato PHC: %q", phc)
	}
	if !password.Verify("secreto123", phc) {
		t.Fatal("la contraseña correcta debe verificar")
	}
	if password.Verify("otra", phc) {
		t.Fatal("una contraseña distinta no debe verificar")
	}
}

func TestHash_RejectsEmpty(t *testing.T) {
	if _, err := password.Hash(fast, ""); err == nil {
		t.Fatal("contraseña vacía debe fallar")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, _ := password.Hash(fast, "igual")
	b, _ := password.Hash(fast, "igual")
	if a == b {
		t.Fatal("dos hashes de la misma contraseña deben diferir por el salt")
	}
}

func TestVerify_MalformedPHC(t *testing.T) {
	bad := []string{
		"",
		"no-es-phc",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$ZGs",   // variante equivocada
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$ZGs",  // versión equivocada
		"$argon2id$v=19$m=8,t=1,p=1$!!notb64$ZG", // salt inválido
	}
	for _, phc := range bad {
		if password.Verify("x", phc) {
			t.Fatalf("PHC malformado no debe verificar: %q", phc)
		}
	}
}
