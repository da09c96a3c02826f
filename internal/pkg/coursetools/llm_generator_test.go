package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const combinedResponse = `{
  "sections": [
    {
      "id": "hook",
      "text": "Maya: Ever wondered why leaves are green?",
      "concept_ids_covered": [],
      "source_reference": "p12:lines 1-4"
    },
    {
      "id": "core_content",
      "text": "Rohan: Chlorophyll absorbs the light plants need.",
      "concept_ids_covered": ["c1"],
      "source_reference": "p12:lines 5-30"
    }
  ],
  "pronunciation_hints": {"chlorophyll": "KLOR-uh-fil"},
  "questions": [
    {
      "qid": "q1",
      "concept_id": "c1",
      "type": "recall",
      "question_text": "What absorbs the light?",
      "options": ["chlorophyll", "glucose", "water", "oxygen"],
      "correct_index": 0,
      "timestamp_ref": 45
    },
    {
      "concept_id": "c1",
      "type": "concept",
      "question_text": "Why are leaves green?",
      "options": ["a", "b", "c", "d"],
      "correct_index": 1,
      "timestamp_ref": 90
    }
  ]
}`

func TestParseEpisodeContent(t *testing.T) {
	Convey("combined artifact responses parse into a script and question set", t, func() {
		Convey("a valid response", func() {
			content, err := ParseEpisodeContent(combinedResponse)
			So(err, ShouldBeNil)
			So(content.Script.Sections, ShouldHaveLength, 2)
			So(content.Script.Sections[0].ID, ShouldEqual, "hook")
			So(content.Script.PronunciationHints["chlorophyll"], ShouldEqual, "KLOR-uh-fil")
			// Word count is recomputed from the section texts.
			So(content.Script.WordCount, ShouldEqual, 14)

			So(content.MCQs.Questions, ShouldHaveLength, 2)
			So(content.MCQs.Questions[0].QID, ShouldEqual, "q1")
			// Missing qids get a positional default.
			So(content.MCQs.Questions[1].QID, ShouldEqual, "q2")
			So(content.MCQs.Questions[1].CorrectIndex, ShouldEqual, 1)
		})

		Convey("fenced responses are cleaned before parsing", func() {
			content, err := ParseEpisodeContent("```json\n" + combinedResponse + "\n```")
			So(err, ShouldBeNil)
			So(content.Script.Sections, ShouldHaveLength, 2)
		})

		Convey("a response without sections is rejected", func() {
			_, err := ParseEpisodeContent(`{"sections":[],"questions":[{"qid":"q1"}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no sections")
		})

		Convey("a response without questions is rejected", func() {
			_, err := ParseEpisodeContent(`{"sections":[{"id":"hook","text":"Maya: Hi."}],"questions":[]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no questions")
		})

		Convey("malformed JSON is rejected", func() {
			_, err := ParseEpisodeContent("{not json")
			So(err, ShouldNotBeNil)

			_, err = ParseEpisodeContent("")
			So(err, ShouldNotBeNil)
		})
	})
}
