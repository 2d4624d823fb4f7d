package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	ppeVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	ppe := NewAppBuild("ppe", "cmd/ppe", ppeVersion)
	ppe.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", ppeVersion).
			CgoEnabled(false)
	})
	ppe.Variant("windows", "amd64")
	ppe.Variant("linux", "amd64")
	ppe.Variant("linux", "arm64")
	ppe.Variant("linux", "arm")
	ppe.Variant("darwin", "amd64")
	ppe.Variant("darwin", "arm64")
	b.ImportApp(ppe)

	b.Execute()
}
