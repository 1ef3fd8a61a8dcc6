package cmd

import (
	"encoding/json"
	"testing"

	"github.com/invopop/jsonschema"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidclip-cli/vidclip/config"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/media"
)

func TestParseValue(t *testing.T) {
	Convey("Values take the type of the field's default", t, func() {
		v, err := parseValue(config.Default[key.StreamMaxHeight], []string{"1080"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 1080)

		v, err = parseValue(config.Default[key.MetadataCache], []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(config.Default[key.TranscriptLanguage], []string{"de"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "de")

		_, err = parseValue(config.Default[key.StreamMaxHeight], []string{"tall"})
		So(err, ShouldNotBeNil)
	})

	Convey("Unknown keys suggest the closest one", t, func() {
		So(errUnknownKey("stream.max_heigth").Error(), ShouldContainSubstring, key.StreamMaxHeight)
	})
}

func TestChooseFormat(t *testing.T) {
	formats := []media.Format{
		{FormatID: "18", Ext: "mp4", Resolution: "640x360"},
		{FormatID: "22", Ext: "mp4", Resolution: "1280x720"},
	}

	Convey("Format descriptions resolve against the list", t, func() {
		f, err := chooseFormat("best", formats)
		So(err, ShouldBeNil)
		So(f.FormatID, ShouldEqual, "22")

		_, err = chooseFormat("index:5", formats)
		So(err, ShouldNotBeNil)

		_, err = chooseFormat("best", nil)
		So(err, ShouldNotBeNil)
	})
}

func TestSchema(t *testing.T) {
	Convey("Optional fields are described by their inner type", t, func() {
		reflector := &jsonschema.Reflector{Mapper: optionSchema, ExpandedStruct: true}
		data, err := json.Marshal(reflector.Reflect(&media.Format{}))
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"filesize":{"type":"integer"}`)
	})
}
