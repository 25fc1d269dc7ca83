// Package storage evidencias de órdenes en Google Cloud Storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSEvidenceStore bucket privado. Los objetos no tienen ACL pública; se leen con URLs V4 firmadas.
type GCSEvidenceStore struct {
	client *gcs.Client
	bucket string
	ttl    time.Duration

	accessID   string
	privateKey []byte

	newWriter func(ctx context.Context, objectKey, contentType string) objectWriter
}

type objectWriter interface {
	io.Writer
	Close() error
}

type serviceAccountJSON struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// NewGCSEvidenceStore abre el cliente. Con credentialsJSON vacío usa las credenciales por
// defecto del entorno y deja que el cliente firme (requiere cuenta de servicio con signBlob).
func NewGCSEvidenceStore(ctx context.Context, bucket, credentialsJSON string, ttl time.Duration) (*GCSEvidenceStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("gcs: bucket de evidencias requerido")
	}
	var opts []option.ClientOption
	s := &GCSEvidenceStore{bucket: bucket, ttl: ttl}
	s.newWriter = s.gcsWriter
	if creds := strings.TrimSpace(credentialsJSON); creds != "" {
		var key serviceAccountJSON
		if err := json.Unmarshal([]byte(creds), &key); err != nil {
			return nil, fmt.Errorf("gcs: credenciales inválidas: %w", err)
		}
		if key.ClientEmail == "" || key.PrivateKey == "" {
			return nil, errors.New("gcs: faltan client_email o private_key en las credenciales")
		}
		s.accessID = key.ClientEmail
		s.privateKey = []byte(strings.ReplaceAll(key.PrivateKey, `\n`, "\n"))
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	s.client = client
	return s, nil
}

// Upload sube el objeto. No se escribe ninguna ACL: el bucket es privado.
// Si la lectura falla se cancela el contexto del writer sin cerrarlo, así GCS
// descarta la subida en vez de finalizar un objeto truncado.
func (s *GCSEvidenceStore) Upload(ctx context.Context, objectKey, contentType string, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.newWriter(ctx, objectKey, contentType)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return fmt.Errorf("gcs: subir %s: %w", objectKey, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: cerrar %s: %w", objectKey, err)
	}
	return nil
}

func (s *GCSEvidenceStore) gcsWriter(ctx context.Context, objectKey, contentType string) objectWriter {
	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

// SignedURL URL GET firmada (V4) con el TTL configurado.
func (s *GCSEvidenceStore) SignedURL(ctx context.Context, objectKey string) (string, time.Time, error) {
	expires := time.Now().Add(s.ttl)
	opts := &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: expires,
	}
	if s.accessID != "" {
		opts.GoogleAccessID = s.accessID
		opts.PrivateKey = s.privateKey
	}
	u, err := s.client.Bucket(s.bucket).SignedURL(objectKey, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("gcs: firmar %s: %w", objectKey, err)
	}
	return u, expires, nil
}

// Close libera el cliente.
func (s *GCSEvidenceStore) Close() error {
	return s.client.Close()
}
