package services

import "testing"

func TestImageUploadParams(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{folder: "", want: DefaultUploadFolder + "/u1"},
		{folder: "reflect/covers/", want: "reflect/covers/u1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := imageUploadParams(tt.folder, "u1")
			if p.Folder != tt.want {
				t.Errorf("Folder = %q, want %q", p.Folder, tt.want)
			}
			if p.ResourceType != "image" || p.PublicID == "" {
				t.Errorf("params = %+v", p)
			}
			if p.Overwrite == nil || *p.Overwrite {
				t.Error("uploads must not overwrite existing images")
			}
		})
	}

	if imageUploadParams("", "u1").PublicID == imageUploadParams("", "u1").PublicID {
		t.Error("public ids repeat")
	}
}
