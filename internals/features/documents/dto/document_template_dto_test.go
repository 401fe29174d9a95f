package dto

import (
	"testing"

	"github.com/google/uuid"

	"personel_backend/internals/features/documents/model"
	helper "personel_backend/internals/helpers"
)

func TestUploadRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     DocumentUploadRequest
		wantErr bool
	}{
		{"ok", DocumentUploadRequest{Name: "  İş Sözleşmesi ", Kind: " Contract"}, false},
		{"missing name", DocumentUploadRequest{Name: "  ", Kind: "letter"}, true},
		{"unknown kind", DocumentUploadRequest{Name: "Dilekçe", Kind: "memo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := helper.Validate.Struct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenameToUpdates(t *testing.T) {
	name, kind := "  Yeni ad ", "FORM"
	req := DocumentRenameRequest{Name: &name, Kind: &kind}
	req.Normalize()
	got := req.ToUpdates()
	if got["document_template_name"] != "Yeni ad" || got["document_template_kind"] != "form" {
		t.Errorf("updates = %v", got)
	}
	if len((&DocumentRenameRequest{}).ToUpdates()) != 0 {
		t.Error("empty request should produce no updates")
	}
}

func TestResponseScope(t *testing.T) {
	region := uuid.New()
	regional := model.DocumentTemplateModel{DocumentTemplateRegionID: &region, DocumentTemplateKind: model.KindLetter}
	global := model.DocumentTemplateModel{DocumentTemplateKind: model.KindContract}

	out := ToDocumentResponses([]model.DocumentTemplateModel{regional, global})
	if out[0].Scope != "region" || out[1].Scope != "global" {
		t.Errorf("scopes = %q, %q", out[0].Scope, out[1].Scope)
	}
	if model.ObjectDir(nil) != "documents/global" || model.ObjectDir(&region) != "documents/"+region.String() {
		t.Error("unexpected object dir")
	}
}
