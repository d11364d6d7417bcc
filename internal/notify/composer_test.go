package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWindow() TimeWindow {
	start := ClockTime{Hour: 10, Minute: 5}
	end := ClockTime{Hour: 11, Minute: 5}
	return TimeWindow{Start: &start, End: &end}
}

func TestBuildMessageJoinRule(t *testing.T) {
	req := ComposeRequest{
		Area:   "Ward 5",
		Kind:   KindOutage,
		Window: sampleWindow(),
		Sample: RecipientSample{Name: "Raman", AccountID: "SCV-10042"},
	}

	req.Languages = Languages{Tamil: true}
	tamilOnly := BuildMessage(req)
	require.NotEmpty(t, tamilOnly)

	req.Languages = Languages{English: true}
	englishOnly := BuildMessage(req)
	require.NotEmpty(t, englishOnly)

	// Both enabled: Tamil first, exactly one blank line between bodies.
	req.Languages = Languages{Tamil: true, English: true}
	both := BuildMessage(req)
	assert.Equal(t, tamilOnly+"\n\n"+englishOnly, both)

	// Neither enabled: empty string, never an auto-selected language.
	req.Languages = Languages{}
	assert.Equal(t, "", BuildMessage(req))
}

func TestBuildMessageInterpolation(t *testing.T) {
	req := ComposeRequest{
		Area:      "Ward 5",
		Kind:      KindOutage,
		Languages: Languages{English: true},
		Window:    sampleWindow(),
		Sample:    RecipientSample{Name: "Raman", AccountID: "SCV-10042"},
	}
	msg := BuildMessage(req)

	assert.Contains(t, msg, "Ward 5")
	assert.Contains(t, msg, "*Raman*")
	assert.Contains(t, msg, "SCV-10042")
	assert.Contains(t, msg, "10:05 AM–11:05 AM")
	assert.Contains(t, msg, "service outage")
}

func TestBuildMessageRestoration(t *testing.T) {
	req := ComposeRequest{
		Area:      "Ward 5",
		Kind:      KindRestoration,
		Languages: Languages{English: true},
		Sample:    RecipientSample{Name: "Raman", AccountID: "SCV-10042"},
	}
	msg := BuildMessage(req)

	assert.Contains(t, msg, "Service has been restored")
	// Restoration text carries no ETA clause at all.
	assert.NotContains(t, msg, "no ETA")
}

func TestBuildMessageEmptyWindowSaysNoETA(t *testing.T) {
	req := ComposeRequest{
		Area:      "Ward 5",
		Kind:      KindOutage,
		Languages: Languages{English: true},
		Sample:    RecipientSample{Name: "Raman", AccountID: "SCV-10042"},
	}
	assert.Contains(t, BuildMessage(req), "*no ETA*")
}

func TestBuildMessagePlaceholders(t *testing.T) {
	// An area with no customers still composes, with placeholder identity.
	req := ComposeRequest{
		Area:      "Ward 9",
		Kind:      KindOutage,
		Languages: Languages{Tamil: true, English: true},
	}
	msg := BuildMessage(req)

	assert.Contains(t, msg, "*Customer*")
	assert.Contains(t, msg, "SCV-XXXXX")

	// No area selected either: generic area wording.
	req.Area = ""
	req.Languages = Languages{English: true}
	assert.Contains(t, BuildMessage(req), "in your area")
}

func TestBuildMessageDeterministic(t *testing.T) {
	req := ComposeRequest{
		Area:      "Ward 5",
		Kind:      KindOutage,
		Languages: Languages{Tamil: true, English: true},
		Window:    sampleWindow(),
		Sample:    RecipientSample{Name: "Raman", AccountID: "SCV-10042"},
	}
	first := BuildMessage(req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildMessage(req))
	}
	assert.Equal(t, 1, strings.Count(first, "\n\n"))
}
