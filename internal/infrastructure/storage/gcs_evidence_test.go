package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter registra si se cerró y el estado del contexto en ese momento.
type fakeWriter struct {
	ctx         context.Context
	buf         bytes.Buffer
	closed      bool
	ctxAtClose  error
	contentType string
}

func (w *fakeWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *fakeWriter) Close() error {
	w.closed = true
	w.ctxAtClose = w.ctx.Err()
	return nil
}

func storeWith(w *fakeWriter) *GCSEvidenceStore {
	return &GCSEvidenceStore{
		bucket: "evidencias",
		newWriter: func(ctx context.Context, _, contentType string) objectWriter {
			w.ctx = ctx
			w.contentType = contentType
			return w
		},
	}
}

func TestUpload_CompletaYCierraElObjeto(t *testing.T) {
	w := &fakeWriter{}

	err := storeWith(w).Upload(context.Background(), "t1/o1/foto.jpg", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.True(t, w.closed)
	assert.NoError(t, w.ctxAtClose, "se cierra con el contexto vivo")
	assert.Equal(t, "jpeg", w.buf.String())
	assert.Equal(t, "image/jpeg", w.contentType)
}

func TestUpload_LecturaFallidaNoFinalizaElObjeto(t *testing.T) {
	w := &fakeWriter{}
	r := io.MultiReader(strings.NewReader("mitad"), iotest.ErrReader(errors.New("conexión cortada")))

	err := storeWith(w).Upload(context.Background(), "t1/o1/foto.jpg", "image/jpeg", r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión cortada")
	assert.False(t, w.closed, "cerrar publicaría el objeto truncado")
	assert.ErrorIs(t, w.ctx.Err(), context.Canceled)
}
