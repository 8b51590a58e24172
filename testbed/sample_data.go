package main

import (
	"fmt"
	"time"

	"tableflip.dev/contcal/pkg/people"
)

// sampleIndex assigns a few people around the current month so badges,
// the dialog and the overflow marker all have something to show.
func sampleIndex(now time.Time) *people.Index {
	day := func(d int) string {
		return time.Date(now.Year(), now.Month(), d, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
	}
	byDate := map[string][]people.Person{
		day(3): {
			{ID: "ada", Name: "Ada Lovelace", Role: "Analyst", Task: "Review the engine tables",
				Email: "ada@example.com", Notes: "Prefers **morning** slots."},
		},
		day(14): {
			{ID: "grace", Name: "Grace Hopper", Role: "Rear Admiral", Task: "Compiler office hours",
				Phone: "+1 555 0100"},
			{ID: "alan", Name: "Alan Turing", Role: "Cryptanalyst", Task: "Bombe maintenance"},
		},
		day(28): {
			{ID: "katherine", Name: "Katherine Johnson", Role: "Mathematician",
				Notes: "- trajectory checks\n- launch window review"},
		},
	}
	crowded := make([]people.Person, 0, 12)
	for i := 1; i <= 12; i++ {
		crowded = append(crowded, people.Person{ID: fmt.Sprintf("crew-%02d", i), Name: fmt.Sprintf("Crew Member %d", i)})
	}
	byDate[day(20)] = crowded
	return people.NewIndex(byDate)
}
