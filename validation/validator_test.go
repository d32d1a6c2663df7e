package validation

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const rules = `[
	{"code": "default", "items": [
		{"type": "number", "regex": "[0-9]{12,19}"},
		{"type": "verificationCode", "regex": "[0-9]{3,4}"}
	]},
	{"code": "AMEX", "items": [
		{"type": "verificationCode", "regex": "[0-9]{4}"}
	]}
]`

func TestUnitValidate(t *testing.T) {

	Convey("Code rules override the defaults", t, func() {
		v, err := Parse([]byte(rules))
		So(err, ShouldBeNil)

		So(v.Validate("VISA", "verificationCode", "123"), ShouldBeTrue)
		So(v.Validate("AMEX", "verificationCode", "123"), ShouldBeFalse)
		So(v.Validate("AMEX", "verificationCode", "1234"), ShouldBeTrue)
		So(v.Validate("AMEX", "number", "378282246310005"), ShouldBeTrue)
		So(v.Validate("VISA", "number", "4111"), ShouldBeFalse)
	})

	Convey("Types without rules accept anything", t, func() {
		v, _ := Parse([]byte(rules))
		So(v.Validate("VISA", "holderName", ""), ShouldBeTrue)

		var empty *Validator
		So(empty.Validate("VISA", "number", "x"), ShouldBeTrue)
	})

	Convey("Rules without a regex are rejected", t, func() {
		_, err := Parse([]byte(`[{"code": "VISA", "items": [{"type": "number"}]}]`))
		So(err, ShouldNotBeNil)
	})

	Convey("Invalid regexes are rejected", t, func() {
		_, err := Parse([]byte(`[{"code": "VISA", "items": [{"type": "number", "regex": "("}]}]`))
		So(err, ShouldNotBeNil)
	})
}

func TestUnitLoad(t *testing.T) {

	Convey("Rules are loaded from file", t, func() {
		path := filepath.Join(t.TempDir(), "validations.json")
		So(os.WriteFile(path, []byte(rules), 0o600), ShouldBeNil)

		v, err := Load(path)
		So(err, ShouldBeNil)
		So(v.Validate("VISA", "number", "4111111111111111"), ShouldBeTrue)
	})

	Convey("A missing file returns an error", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		So(err, ShouldNotBeNil)
	})
}
