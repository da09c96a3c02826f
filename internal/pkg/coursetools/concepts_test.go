package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const extractionResponse = `{
  "concepts": [
    {
      "id": "photosynthesis",
      "name": "Photosynthesis",
      "summary": "How plants build glucose from light",
      "importance": 5,
      "difficulty": "medium",
      "estimated_minutes": 3.5,
      "exam_relevance": ["defines the process"],
      "source_reference": "p12:lines 1-20"
    },
    {
      "id": "chlorophyll",
      "name": "Chlorophyll",
      "summary": "The pigment that captures light",
      "importance": 4,
      "difficulty": "easy",
      "estimated_minutes": 2
    }
  ],
  "graph": [["photosynthesis", "chlorophyll"]]
}`

func TestParseConceptExtraction(t *testing.T) {
	Convey("extraction responses are parsed and validated", t, func() {
		Convey("a valid response preserves textbook order", func() {
			concepts, err := ParseConceptExtraction(extractionResponse)
			So(err, ShouldBeNil)
			So(concepts, ShouldHaveLength, 2)
			So(concepts[0].ID, ShouldEqual, "photosynthesis")
			So(concepts[1].ID, ShouldEqual, "chlorophyll")
			So(*concepts[0].Importance, ShouldEqual, 5)
			So(*concepts[0].EstimatedMinutes, ShouldEqual, 3.5)
			So(concepts[0].Prerequisites, ShouldBeEmpty)
			So(concepts[1].Prerequisites, ShouldResemble, []string{"photosynthesis"})
			// Optional list fields come back empty, not nil.
			So(concepts[1].ExamRelevance, ShouldNotBeNil)
			So(concepts[1].ExamRelevance, ShouldBeEmpty)
		})

		Convey("markdown fences around the JSON are stripped", func() {
			concepts, err := ParseConceptExtraction("```json\n" + extractionResponse + "\n```")
			So(err, ShouldBeNil)
			So(concepts, ShouldHaveLength, 2)
		})

		Convey("a concept without importance is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[{"id":"a","name":"A","difficulty":"easy","estimated_minutes":2}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing importance")
		})

		Convey("importance outside 1-5 is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[{"id":"a","name":"A","importance":9,"difficulty":"easy","estimated_minutes":2}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "out of range")
		})

		Convey("a concept without estimated_minutes is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[{"id":"a","name":"A","importance":3,"difficulty":"easy"}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing estimated_minutes")
		})

		Convey("non-positive estimated_minutes is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[{"id":"a","name":"A","importance":3,"difficulty":"easy","estimated_minutes":0}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "must be positive")
		})

		Convey("an unknown difficulty is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[{"id":"a","name":"A","importance":3,"difficulty":"brutal","estimated_minutes":2}]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown difficulty")
		})

		Convey("duplicate ids are rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[
				{"id":"a","name":"A","importance":3,"difficulty":"easy","estimated_minutes":2},
				{"id":"a","name":"A again","importance":3,"difficulty":"easy","estimated_minutes":2}
			]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate concept id")
		})

		Convey("a graph edge to an unknown concept is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[
				{"id":"a","name":"A","importance":3,"difficulty":"easy","estimated_minutes":2}
			],"graph":[["ghost","a"]]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown concept")
		})

		Convey("a self-referencing prerequisite is rejected", func() {
			_, err := ParseConceptExtraction(`{"concepts":[
				{"id":"a","name":"A","importance":3,"difficulty":"easy","estimated_minutes":2}
			],"graph":[["a","a"]]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "itself")
		})

		Convey("empty responses are rejected", func() {
			_, err := ParseConceptExtraction("")
			So(err, ShouldNotBeNil)

			_, err = ParseConceptExtraction(`{"concepts":[]}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no concepts")
		})
	})
}
