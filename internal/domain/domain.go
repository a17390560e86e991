// Package domain holds the persisted models for the lab notebook:
// projects, their experiments, per-project result schemas, and the
// output configuration selecting which schema keys feed reporting.
package domain

const (
	ProjectTypeVOC     = "VOC"
	ProjectTypeRegular = "REGULAR"

	ProjectStatusOngoing = "ONGOING"
	ProjectStatusClosed  = "CLOSED"

	ValueTypeQuantitative = "quantitative"
	ValueTypeQualitative  = "qualitative"
	ValueTypeCategorical  = "categorical"

	MaterialUnitGram     = "g"
	MaterialUnitKilogram = "kg"
)

func ValidProjectType(t string) bool {
	return t == ProjectTypeVOC || t == ProjectTypeRegular
}

func ValidProjectStatus(s string) bool {
	return s == ProjectStatusOngoing || s == ProjectStatusClosed
}

func ValidValueType(t string) bool {
	return t == ValueTypeQuantitative || t == ValueTypeQualitative || t == ValueTypeCategorical
}

func ValidMaterialUnit(u string) bool {
	return u == MaterialUnitGram || u == MaterialUnitKilogram
}
