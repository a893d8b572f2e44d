package storefrontserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// MaxUploadBytes caps a single file part.
const MaxUploadBytes = 10 << 20

// formFiles reads every part named field. A missing field yields no files.
func formFiles(c *gin.Context, field string) ([]uploaddomain.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	headers := form.File[field]
	files := make([]uploaddomain.File, 0, len(headers))
	for _, header := range headers {
		file, err := readPart(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readPart(header *multipart.FileHeader) (uploaddomain.File, error) {
	if header.Size > MaxUploadBytes {
		return uploaddomain.File{}, fmt.Errorf("%s exceeds %d bytes", header.Filename, MaxUploadBytes)
	}
	src, err := header.Open()
	if err != nil {
		return uploaddomain.File{}, err
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return uploaddomain.File{}, err
	}
	if len(data) > MaxUploadBytes {
		return uploaddomain.File{}, fmt.Errorf("%s exceeds %d bytes", header.Filename, MaxUploadBytes)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return uploaddomain.File{Name: header.Filename, ContentType: contentType, Data: data}, nil
}
