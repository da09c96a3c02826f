package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCategorize(t *testing.T) {
	Convey("validation errors map into the fixed taxonomy", t, func() {
		cases := []struct {
			err  string
			want Category
		}{
			{"script too short: word count 300 below minimum 450", CategoryScriptLength},
			{"script too long: word count 1200 above maximum 1100", CategoryScriptLength},
			{"mcq count 2 outside allowed range [3, 6]", CategoryMCQSync},
			{`mcq question q1 timestamp_ref 500s exceeds episode duration 420s`, CategoryMCQSync},
			{`section "core_content" makes claims without a source reference and is not marked inferred`, CategoryHallucination},
			{`hallucination guard: inferred section "hook" lacks hedged language`, CategoryHallucination},
			{"speaker dialogue tagging ratio 0.80 below required 0.95 (8 of 10 lines tagged)", CategoryToneDrift},
			{`forbidden teacher-voice phrase "homework" found in script`, CategoryToneDrift},
			{`no pronunciation hint for term "chlorophyll"`, CategoryPronunciation},
			{`missing required section "summary"`, CategoryStructure},
			{"audio duration 95.0s outside 10% tolerance of expected 120.0s", CategoryOther},
		}

		for _, c := range cases {
			got := Categorize([]string{c.err})
			So(got, ShouldContainKey, c.want)
			So(got[c.want], ShouldResemble, []string{c.err})
		}

		Convey("the first matching category in priority order wins", func() {
			// Contains both a hallucination keyword and a structure
			// keyword; hallucination ranks higher.
			got := Categorize([]string{`section "hook" makes claims without a source reference and is not marked inferred`})
			So(got, ShouldContainKey, CategoryHallucination)
			So(got, ShouldNotContainKey, CategoryStructure)
		})

		Convey("grouping drops nothing", func() {
			errs := []string{
				"script too short: word count 300 below minimum 450",
				"script too long: word count 1200 above maximum 1100",
				`missing required section "summary"`,
				"something nobody anticipated",
			}
			got := Categorize(errs)
			So(got[CategoryScriptLength], ShouldHaveLength, 2)
			So(got[CategoryStructure], ShouldHaveLength, 1)
			So(got[CategoryOther], ShouldHaveLength, 1)

			total := 0
			for _, v := range got {
				total += len(v)
			}
			So(total, ShouldEqual, len(errs))
		})
	})
}

func TestRepairActionFor(t *testing.T) {
	Convey("each category maps to one fixed repair action", t, func() {
		So(RepairActionFor(CategoryScriptLength, []string{"script too short: word count 300 below minimum 450"}),
			ShouldEqual, ActionRegenShortScript)
		So(RepairActionFor(CategoryScriptLength, []string{"script too long: word count 1200 above maximum 1100"}),
			ShouldEqual, ActionRegenLongScript)
		So(RepairActionFor(CategoryMCQSync, nil), ShouldEqual, ActionRegenMCQSync)
		So(RepairActionFor(CategoryHallucination, nil), ShouldEqual, ActionRegenRemoveHallucination)
		So(RepairActionFor(CategoryToneDrift, nil), ShouldEqual, ActionRegenToneFix)
		So(RepairActionFor(CategoryPronunciation, nil), ShouldEqual, ActionRegenPronunciation)
		So(RepairActionFor(CategoryStructure, nil), ShouldEqual, ActionRegenStructure)
		So(RepairActionFor(CategoryOther, nil), ShouldEqual, ActionRegenClarity)
	})
}
