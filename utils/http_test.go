package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitWriteJSONWithStatus(t *testing.T) {
	Convey("Failure to marshal json", t, func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		// causes an UnsupportedTypeError
		WriteJSONWithStatus(w, r, make(chan int), http.StatusInternalServerError)

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
		So(w.Body.String(), ShouldEqual, "")
	})

	Convey("contents are written as json", t, func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		WriteJSONWithStatus(w, r, "message", http.StatusCreated)

		So(w.Code, ShouldEqual, http.StatusCreated)
		So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
		So(w.Body.String(), ShouldContainSubstring, "message")
	})
}

func TestUnitUnmarshalRequestBody(t *testing.T) {
	type body struct {
		ListURL string `json:"list_url"`
	}

	Convey("Empty body", t, func() {
		var b body
		err := UnmarshalRequestBody(httptest.NewRequest(http.MethodPost, "/", nil), &b)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldEqual, "request body empty")
	})

	Convey("Malformed body", t, func() {
		var b body
		err := UnmarshalRequestBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &b)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldStartWith, "request body invalid")
	})

	Convey("Body is decoded", t, func() {
		var b body
		err := UnmarshalRequestBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"list_url": "https://example.com"}`)), &b)
		So(err, ShouldBeNil)
		So(b.ListURL, ShouldEqual, "https://example.com")
	})
}
