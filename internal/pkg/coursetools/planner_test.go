package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

func TestTargetMinutes(t *testing.T) {
	Convey("TargetMinutes resolves grade bands", t, func() {
		p := NewPlanner()

		cases := map[string]float64{
			"1-2":   4,
			"3-5":   5,
			"6-8":   7,
			"9-10":  8,
			"11-12": 10,
			"4":     5,
			"7":     7,
			"12":    10,
		}
		for band, want := range cases {
			got, err := p.TargetMinutes(band)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("non-numeric band fails", func() {
			_, err := p.TargetMinutes("K-2")
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &PlanningError{})
		})

		Convey("grade outside all bands fails", func() {
			_, err := p.TargetMinutes("13")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPlanPartition(t *testing.T) {
	Convey("Plan partitions concepts into duration-bounded episodes", t, func() {
		p := NewPlanner()

		Convey("five 2 minute concepts at a 7 minute target make two episodes", func() {
			concepts := []course.Concept{
				testConcept("c1", 2),
				testConcept("c2", 2),
				testConcept("c3", 2),
				testConcept("c4", 2),
				testConcept("c5", 2),
			}
			specs, err := p.Plan(concepts, "6-8")
			So(err, ShouldBeNil)
			So(specs, ShouldHaveLength, 2)
			So(specs[0].EpisodeNumber, ShouldEqual, 1)
			So(specs[1].EpisodeNumber, ShouldEqual, 2)
			So(specs[0].ConceptIDs, ShouldResemble, []string{"c1", "c2", "c3"})
			So(specs[1].ConceptIDs, ShouldResemble, []string{"c4", "c5"})
			So(specs[0].TargetDurationMinutes, ShouldEqual, 7)
			So(specs[0].TargetWords, ShouldEqual, 1050)
			So(specs[0].Rationale, ShouldNotBeEmpty)
		})

		Convey("every concept lands in exactly one episode", func() {
			concepts := []course.Concept{
				testConcept("a", 1.5),
				testConcept("b", 3),
				testConcept("c", 2),
				testConcept("d", 4),
				testConcept("e", 2.5),
				testConcept("f", 3),
			}
			specs, err := p.Plan(concepts, "9-10")
			So(err, ShouldBeNil)

			seen := make(map[string]int)
			for _, s := range specs {
				for _, id := range s.ConceptIDs {
					seen[id]++
				}
			}
			So(seen, ShouldHaveLength, len(concepts))
			for _, c := range concepts {
				So(seen[c.ID], ShouldEqual, 1)
			}
		})

		Convey("concepts without prerequisites keep textbook order", func() {
			concepts := []course.Concept{
				testConcept("first", 2),
				testConcept("second", 2),
				testConcept("third", 2),
				testConcept("fourth", 2),
			}
			specs, err := p.Plan(concepts, "3-5")
			So(err, ShouldBeNil)

			var flat []string
			for _, s := range specs {
				flat = append(flat, s.ConceptIDs...)
			}
			So(flat, ShouldResemble, []string{"first", "second", "third", "fourth"})
		})

		Convey("a prerequisite listed after its dependent is moved ahead", func() {
			concepts := []course.Concept{
				testConcept("b", 2, "a"),
				testConcept("a", 2),
			}
			specs, err := p.Plan(concepts, "6-8")
			So(err, ShouldBeNil)
			So(specs, ShouldHaveLength, 1)
			So(specs[0].ConceptIDs, ShouldResemble, []string{"a", "b"})
		})

		Convey("episode durations stay inside the flexibility band", func() {
			concepts := []course.Concept{
				testConcept("a", 2),
				testConcept("b", 2),
				testConcept("c", 2),
				testConcept("d", 2),
				testConcept("e", 2),
				testConcept("f", 2),
			}
			specs, err := p.Plan(concepts, "3-5")
			So(err, ShouldBeNil)
			So(len(specs), ShouldBeGreaterThan, 1)
			for _, s := range specs {
				So(s.EstimatedMinutes, ShouldBeGreaterThanOrEqualTo, 5*0.7)
				So(s.EstimatedMinutes, ShouldBeLessThanOrEqualTo, 5*1.3)
			}
		})

		Convey("a near-empty trailing episode merges into the previous one", func() {
			concepts := []course.Concept{
				testConcept("a", 3),
				testConcept("b", 3),
				testConcept("c", 1),
			}
			specs, err := p.Plan(concepts, "6-8")
			So(err, ShouldBeNil)
			So(specs, ShouldHaveLength, 1)
			So(specs[0].ConceptIDs, ShouldResemble, []string{"a", "b", "c"})
			So(specs[0].EstimatedMinutes, ShouldEqual, 7)
		})

		Convey("a single oversized concept keeps its own duration", func() {
			concepts := []course.Concept{testConcept("big", 12)}
			specs, err := p.Plan(concepts, "6-8")
			So(err, ShouldBeNil)
			So(specs, ShouldHaveLength, 1)
			So(specs[0].TargetDurationMinutes, ShouldEqual, 12)
			So(specs[0].TargetWords, ShouldEqual, 1800)
			So(specs[0].Rationale, ShouldContainSubstring, "own episode")
		})
	})
}

func TestPlanRejectsMalformedInput(t *testing.T) {
	Convey("Plan fails fast on malformed concept data", t, func() {
		p := NewPlanner()

		Convey("empty concept list", func() {
			_, err := p.Plan(nil, "6-8")
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &PlanningError{})
		})

		Convey("missing importance", func() {
			c := testConcept("a", 2)
			c.Importance = nil
			_, err := p.Plan([]course.Concept{c}, "6-8")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing importance")
		})

		Convey("missing estimated minutes", func() {
			c := testConcept("a", 2)
			c.EstimatedMinutes = nil
			_, err := p.Plan([]course.Concept{c}, "6-8")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing estimated_minutes")
		})

		Convey("non-positive estimated minutes", func() {
			_, err := p.Plan([]course.Concept{testConcept("a", 0)}, "6-8")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "must be positive")
		})

		Convey("unknown prerequisite", func() {
			_, err := p.Plan([]course.Concept{testConcept("a", 2, "ghost")}, "6-8")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown prerequisite")
		})

		Convey("cyclic prerequisite graph", func() {
			concepts := []course.Concept{
				testConcept("a", 2, "b"),
				testConcept("b", 2, "a"),
			}
			_, err := p.Plan(concepts, "6-8")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "cycle")
		})

		Convey("unrecognized grade band", func() {
			_, err := p.Plan([]course.Concept{testConcept("a", 2)}, "kindergarten")
			So(err, ShouldNotBeNil)
		})
	})
}
