package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog describes the services (layanan) the office offers, the documents each
// one needs before staff can be assigned, and the todo items coordinators pick from.
type Catalog struct {
	Services     []string            `yaml:"services" json:"services"`
	Requirements map[string][]string `yaml:"requirements" json:"requirements"`
	TodoItems    []string            `yaml:"todo_items" json:"todo_items"`
}

// DefaultCatalog is used when no catalog file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Services: []string{
			"Surat Keterangan",
			"Legalisir Dokumen",
			"Perizinan",
			"Permohonan Data",
			"Pengaduan",
		},
		Requirements: map[string][]string{
			"Surat Keterangan":  {"Surat Permohonan", "KTP", "Kartu Keluarga"},
			"Legalisir Dokumen": {"Surat Permohonan", "Dokumen Asli", "Fotokopi Dokumen"},
			"Perizinan":         {"Surat Permohonan", "KTP", "NPWP", "Proposal Kegiatan"},
			"Permohonan Data":   {"Surat Permohonan", "Surat Pengantar Instansi"},
		},
		TodoItems: []string{
			"Verifikasi berkas",
			"Input data ke sistem",
			"Koordinasi dengan instansi terkait",
			"Penyusunan draft surat balasan",
			"Pengecekan lapangan",
			"Penandatanganan dokumen",
		},
	}
}

// LoadCatalog reads a YAML catalog from path. An empty path yields DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Services) == 0 {
		return nil, fmt.Errorf("catalog: at least one service is required")
	}
	for svc := range c.Requirements {
		if !c.HasService(svc) {
			return nil, fmt.Errorf("catalog: requirements listed for unknown service %q", svc)
		}
	}
	return &c, nil
}

// HasService reports whether name is an offered service.
func (c *Catalog) HasService(name string) bool {
	for _, s := range c.Services {
		if s == name {
			return true
		}
	}
	return false
}

// RequiredDocuments returns the documents a service needs, possibly none.
func (c *Catalog) RequiredDocuments(service string) []string {
	return c.Requirements[service]
}

// HasTodo reports whether item is a known todo item.
func (c *Catalog) HasTodo(item string) bool {
	for _, t := range c.TodoItems {
		if t == item {
			return true
		}
	}
	return false
}
