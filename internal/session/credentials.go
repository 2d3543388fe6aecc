package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// CredentialStore es el storage durable del cliente: exactamente dos entradas
// opacas (id de empleado y credencial de sesión). Invariante: ambas presentes
// o ninguna; una credencial a medias se trata como deslogueado.
type CredentialStore interface {
	Load() (staffID, token string, ok bool)
	Save(staffID, token string) error
	Clear() error
}

// =================================================================================
// FILE STORE (cliente CLI)
// =================================================================================

type fileCreds struct {
	StaffID string `json:"staff_id"`
	Token   string `json:"token"`
}

// FileStore persiste las credenciales en un archivo JSON (0600).
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (f *FileStore) Load() (string, string, bool) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", "", false
	}
	var c fileCreds
	if err := json.Unmarshal(b, &c); err != nil {
		return "", "", false
	}
	// Ambas entradas o ninguna
	if c.StaffID == "" || c.Token == "" {
		return "", "", false
	}
	return c.StaffID, c.Token, true
}

func (f *FileStore) Save(staffID, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(fileCreds{StaffID: staffID, Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// =================================================================================
// MEM STORE (tests)
// =================================================================================

// MemStore es un CredentialStore en memoria para tests.
type MemStore struct {
	mu      sync.Mutex
	staffID string
	token   string
}

func (m *MemStore) Load() (string, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staffID == "" || m.token == "" {
		return "", "", false
	}
	return m.staffID, m.token, true
}

func (m *MemStore) Save(staffID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staffID, m.token = staffID, token
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staffID, m.token = "", ""
	return nil
}
