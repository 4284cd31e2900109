package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/blang/semver"

	"github.com/cfi2017/modio-go/modio"
)

// staticHelpers is the environment used for compile-time validation. It
// only holds the helper functions; mod properties are bound per
// evaluation.
func staticHelpers() map[string]any {
	env := make(map[string]any, 24)
	addHelpers(env)
	return env
}

func addHelpers(env map[string]any) {
	// date helpers; mod timestamps are unix seconds
	env["daysSince"] = func(unix int64) int {
		return int(time.Since(time.Unix(unix, 0)).Hours() / 24)
	}
	env["daysAgo"] = func(days int) int64 {
		return time.Now().AddDate(0, 0, -days).Unix()
	}
	env["monthsAgo"] = func(months int) int64 {
		return time.Now().AddDate(0, -months, 0).Unix()
	}
	env["yearsAgo"] = func(years int) int64 {
		return time.Now().AddDate(-years, 0, 0).Unix()
	}
	env["parseDate"] = func(dateStr string) int64 {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t.Unix()
	}
	env["now"] = func() int64 { return time.Now().Unix() }
	// string helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// runtimeEnv binds a mod's properties and mod-specific helpers on top of
// the shared helper set.
func runtimeEnv(mod modio.Mod) map[string]any {
	env := make(map[string]any, 48)
	addHelpers(env)

	env["Mod"] = mod
	env["hasTag"] = hasTagFunc(mod.Tags)
	env["versionAtLeast"] = versionAtLeastFunc(mod.Modfile)

	env["ID"] = mod.ID
	env["Name"] = mod.Name
	env["NameID"] = mod.NameID
	env["Summary"] = mod.Summary
	env["DateAdded"] = mod.DateAdded
	env["DateUpdated"] = mod.DateUpdated
	env["Tags"] = tagNames(mod.Tags)
	env["HasFile"] = mod.Modfile != nil

	if file := mod.Modfile; file != nil {
		env["Version"] = file.Version
		env["Filesize"] = file.Filesize
		env["Filename"] = file.Filename
	} else {
		env["Version"] = ""
		env["Filesize"] = int64(0)
		env["Filename"] = ""
	}

	if stats := mod.Stats; stats != nil {
		env["Downloads"] = stats.DownloadsTotal
		env["Subscribers"] = stats.SubscribersTotal
		env["RatingsPositive"] = stats.RatingsPositive
		env["RatingsNegative"] = stats.RatingsNegative
		env["Rating"] = stats.RatingsWeighted
	} else {
		env["Downloads"] = int64(0)
		env["Subscribers"] = int64(0)
		env["RatingsPositive"] = int64(0)
		env["RatingsNegative"] = int64(0)
		env["Rating"] = float64(0)
	}

	if mod.SubmittedBy != nil {
		env["Author"] = mod.SubmittedBy.Username
	} else {
		env["Author"] = ""
	}

	return env
}

func tagNames(tags []modio.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func hasTagFunc(tags []modio.Tag) func(string) bool {
	lowered := make([]string, len(tags))
	for i, tag := range tags {
		lowered[i] = strings.ToLower(tag.Name)
	}
	return func(tag string) bool {
		return slices.Contains(lowered, strings.ToLower(tag))
	}
}

// versionAtLeastFunc compares the primary file's version against a
// minimum using semver rules. Mods without a file or with versions that
// do not parse never satisfy the predicate.
func versionAtLeastFunc(file *modio.File) func(string) bool {
	return func(minimum string) bool {
		if file == nil {
			return false
		}
		have, err := semver.ParseTolerant(file.Version)
		if err != nil {
			return false
		}
		want, err := semver.ParseTolerant(minimum)
		if err != nil {
			return false
		}
		return have.GTE(want)
	}
}
