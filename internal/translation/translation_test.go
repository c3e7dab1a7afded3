package translation

import (
	"strings"
	"testing"
)

func TestTranslateFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	if got := T("de", "Take it"); got != "Take it" {
		t.Fatalf("unknown language: got %q", got)
	}
	if got := T("en", "Take it"); got != "Take it" {
		t.Fatalf("english: got %q", got)
	}
	if got := T("ru", "no such catalog entry"); got != "no such catalog entry" {
		t.Fatalf("missing entry: got %q", got)
	}
}

func TestTranslateUsesCatalog(t *testing.T) {
	t.Parallel()

	if got := T("ru", "Take it"); got != "Забрать" {
		t.Fatalf("got %q", got)
	}
}

func TestCatalogsCoverEmittedStrings(t *testing.T) {
	t.Parallel()

	// Strings the handlers actually pass to T. Every one must resolve to a
	// translation in ru, not fall back to the English source.
	emitted := []string{
		"What is your name?",
		"Where are you located?",
		"Which of these describes you best?",
		"Hello! I will post the food you share. To start, enter the name of your place:",
		"Please, enter the address of the place:",
		"Is this where people should come for the food?",
		"Enter the description of the food and when to take it, and I will send it to people:",
		"When will the food be available? (for example: today 18:00-20:00)",
		"Posting requires your city. Please, choose it in your info first.",
		"Enter or send the phone number the supplier can reach you at:",
		"The phone number doesn't look right. Try again, please:",
		"Done! The supplier will confirm your request soon.",
		"%s can share the following:\n%s",
		"%s is waiting for you",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s",
		"Your request was approved",
		"The request is rejected and your message is opened again.",
		"%s marked the food as handed over. Enjoy!",
		"🤝 Food is handed over",
		"🗂 My info",
		"View all messages",
		"Take it",
		"Back",
	}
	for _, src := range emitted {
		if got := T("ru", src); got == src {
			t.Errorf("no ru entry for %q", src)
		}
	}

	// The demand-side core must be covered in every supported language.
	core := []string{
		"Take it",
		"What is your name?",
		"%s can share the following:\n%s",
		"Choose the bot language:",
		"Sorry, something went wrong.",
	}
	for _, lang := range Supported {
		if lang == "en" {
			continue
		}
		for _, src := range core {
			if got := T(lang, src); got == src {
				t.Errorf("no %s entry for %q", lang, src)
			}
		}
	}
}

func TestCatalogEntriesKeepPlaceholders(t *testing.T) {
	t.Parallel()

	for lang, entries := range catalogs {
		for src, dst := range entries {
			if strings.Count(src, "%s") != strings.Count(dst, "%s") {
				t.Errorf("%s: placeholder mismatch for %q", lang, src)
			}
		}
	}
}

func TestTranslateFormatsArguments(t *testing.T) {
	t.Parallel()

	if got := T("en", "Time: %s", "18:00"); got != "Time: 18:00" {
		t.Fatalf("got %q", got)
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	for _, lang := range Supported {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false", lang)
		}
		if LangName[lang] == "" {
			t.Errorf("no self-name for %q", lang)
		}
	}
	if IsSupported("de") {
		t.Error("IsSupported(de) = true")
	}
}
