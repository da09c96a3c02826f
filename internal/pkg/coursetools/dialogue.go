package coursetools

import (
	"strings"

	"revcast/internal/model/course"
)

// DialogueSegment is one speaker turn extracted from a script, ready
// for per-voice synthesis.
type DialogueSegment struct {
	Speaker string
	Text    string
}

// ScriptText concatenates all section texts in order.
func ScriptText(script *course.Script) string {
	var b strings.Builder
	for _, s := range script.Sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// SplitDialogue extracts speaker turns from "Speaker: text" lines.
// Lines without a recognized speaker tag are appended to the previous
// turn so stray continuation lines are not lost.
func SplitDialogue(script *course.Script, speakers []string) []DialogueSegment {
	var segments []DialogueSegment
	for _, line := range strings.Split(ScriptText(script), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if speaker, text, ok := splitSpeakerLine(line, speakers); ok {
			segments = append(segments, DialogueSegment{Speaker: speaker, Text: text})
			continue
		}
		if len(segments) > 0 {
			segments[len(segments)-1].Text += " " + line
		}
	}
	return segments
}

// SpeakerTaggingRatio reports the fraction of non-empty lines carrying
// a recognized speaker tag, together with the line counts.
func SpeakerTaggingRatio(script *course.Script, speakers []string) (ratio float64, tagged, total int) {
	for _, line := range strings.Split(ScriptText(script), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if _, _, ok := splitSpeakerLine(line, speakers); ok {
			tagged++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return float64(tagged) / float64(total), tagged, total
}

func splitSpeakerLine(line string, speakers []string) (speaker, text string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}
	name := strings.TrimSpace(line[:i])
	for _, s := range speakers {
		if strings.EqualFold(name, s) {
			return s, strings.TrimSpace(line[i+1:]), true
		}
	}
	return "", "", false
}
