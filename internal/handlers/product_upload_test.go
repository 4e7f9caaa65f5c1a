package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseUpload_KeepsRepeatedFieldsAndFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("suitableFor", "Oval")
	_ = writer.WriteField("suitableFor", "Round")
	part, _ := writer.CreateFormFile("images", "front.jpg")
	_, _ = part.Write([]byte("jpeg"))
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	form, err := parseUpload(c)
	if err != nil {
		t.Fatalf("parseUpload returned error: %v", err)
	}
	if got := form.Value["suitableFor"]; len(got) != 2 || got[1] != "Round" {
		t.Fatalf("expected both suitableFor values, got %v", got)
	}
	if got := form.File["images"]; len(got) != 1 || got[0].Filename != "front.jpg" {
		t.Fatalf("expected one image, got %v", got)
	}
}

func TestParseUpload_AcceptsURLEncodedPost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	values := url.Values{"name": {"Aviator"}}
	req := httptest.NewRequest("POST", "/products", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	form, err := parseUpload(c)
	if err != nil {
		t.Fatalf("parseUpload returned error: %v", err)
	}
	if form.Value["name"][0] != "Aviator" {
		t.Fatalf("expected name value, got %v", form.Value)
	}
	if len(form.File) != 0 {
		t.Fatalf("expected no files, got %v", form.File)
	}
}
