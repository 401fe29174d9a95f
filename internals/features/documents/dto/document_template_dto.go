// file: internals/features/documents/dto/document_template_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"personel_backend/internals/features/documents/model"
)

// Multipart fields sent next to the "file" part.
type DocumentUploadRequest struct {
	Name string `form:"name" validate:"required,min=2,max=150"`
	Kind string `form:"kind" validate:"required,oneof=contract letter form"`
}

func (r *DocumentUploadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
}

type DocumentRenameRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=150"`
	Kind *string `json:"kind" validate:"omitempty,oneof=contract letter form"`
}

func (r *DocumentRenameRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Kind != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Kind))
		r.Kind = &v
	}
}

func (r *DocumentRenameRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["document_template_name"] = *r.Name
	}
	if r.Kind != nil {
		m["document_template_kind"] = *r.Kind
	}
	return m
}

// Scope: "all" (region + global, default), "region" or "global".
type DocumentListQuery struct {
	Q     string `query:"q"`
	Kind  string `query:"kind" validate:"omitempty,oneof=contract letter form"`
	Scope string `query:"scope" validate:"omitempty,oneof=all region global"`
}

type DocumentResponse struct {
	DocumentTemplateID uuid.UUID  `json:"document_template_id"`
	RegionID           *uuid.UUID `json:"region_id,omitempty"`
	Scope              string     `json:"scope"`
	Name               string     `json:"name"`
	Kind               string     `json:"kind"`
	FileURL            string     `json:"file_url"`
	ContentType        string     `json:"content_type"`
	SizeBytes          int64      `json:"size_bytes"`
	UploadedBy         *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToDocumentResponse(m *model.DocumentTemplateModel) DocumentResponse {
	scope := "region"
	if m.IsGlobal() {
		scope = "global"
	}
	return DocumentResponse{
		DocumentTemplateID: m.DocumentTemplateID,
		RegionID:           m.DocumentTemplateRegionID,
		Scope:              scope,
		Name:               m.DocumentTemplateName,
		Kind:               string(m.DocumentTemplateKind),
		FileURL:            m.DocumentTemplateFileURL,
		ContentType:        m.DocumentTemplateContentType,
		SizeBytes:          m.DocumentTemplateSizeBytes,
		UploadedBy:         m.DocumentTemplateUploadedBy,
		CreatedAt:          m.DocumentTemplateCreatedAt,
		UpdatedAt:          m.DocumentTemplateUpdatedAt,
	}
}

func ToDocumentResponses(rows []model.DocumentTemplateModel) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToDocumentResponse(&rows[i]))
	}
	return out
}
