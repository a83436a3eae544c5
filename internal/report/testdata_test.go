package report

import "github.com/nao1215/obsreport/internal/model"

// createTestRows creates one target queried against three sites:
// one failing, one empty, and one with several kinds of findings.
func createTestRows() []model.TargetRow {
	row := model.NewTargetRow("example.com", "fqdn", "fqdn")
	row.AddOutcome(model.NewErrorOutcome("Broken Site", "connection refused"))
	row.AddOutcome(model.NewEmptyOutcome("Quiet Site"))
	row.AddOutcome(model.NewResultsOutcome("Busy Site",
		model.NewResultItem("Domain", model.Field{Name: "a", Value: "foo.com"}),
		model.NewResultItem("Network",
			model.Field{Name: "ip", Value: "1.2.3.4"},
			model.Field{Name: "asn", Value: "AS1"},
		).WithLabels("IP", "ASN"),
		model.NewResultItem("URL", model.Field{Name: "url", Value: "http://bad.example/x"}).
			WithAnnotation("2024-01-01"),
	))
	return []model.TargetRow{row}
}

// malformedRows returns rows holding an item whose labels do not match its values.
func malformedRows() []model.TargetRow {
	row := model.NewTargetRow("example.com", "fqdn", "fqdn")
	row.AddOutcome(model.NewResultsOutcome("Busy Site",
		model.NewResultItem("Network",
			model.Field{Name: "ip", Value: "1.2.3.4"},
			model.Field{Name: "asn", Value: "AS1"},
		).WithLabels("IP"),
	))
	return []model.TargetRow{row}
}
