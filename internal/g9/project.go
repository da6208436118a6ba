package g9

import "regexp"

// Site is the normalised site descriptor extracted from a project export.
// Every field resolves from an ordered list of source keys; g9 has renamed
// several of them between acquisition versions, so each alias list starts
// with the newest spelling. Unresolvable fields stay empty.
type Site struct {
	ProjectName        string `json:"project_name"`
	SiteName           string `json:"site_name"`
	SiteCode           string `json:"site_code"`
	Latitude           string `json:"latitude"`
	Longitude          string `json:"longitude"`
	Elevation          string `json:"elevation"`
	Gradient           string `json:"gradient"`
	SetupHeight        string `json:"setup_height"`
	TransferHeight     string `json:"transfer_height"`
	FactoryHeight      string `json:"factory_height"`
	BarometerFactor    string `json:"barometer_factor"`
	PolarX             string `json:"polar_x"`
	PolarY             string `json:"polar_y"`
	Operator           string `json:"operator"`
	Instrument         string `json:"instrument"`
	InstrumentSN       string `json:"instrument_sn"`
	AcquisitionVersion string `json:"acquisition_version"`
	ProcessingVersion  string `json:"processing_version"`
	ProcessingDate     string `json:"processing_date"`
	ProcessingTime     string `json:"processing_time"`
	Gravity            string `json:"gravity"`
}

// QualityMetrics holds the numeric quality figures of a project export.
// Fields are nil when the export omits the key or the value holds no number.
type QualityMetrics struct {
	ProjectSetScatter *float64 `json:"project_set_scatter"`
	SetScatterOverall *float64 `json:"set_scatter_overall"`
	UncertaintyPerSet *float64 `json:"uncertainty_per_set"`
	TotalUncertainty  *float64 `json:"total_uncertainty"`
	Gravity           *float64 `json:"gravity"`
}

// ProjectMeta bundles everything extracted from one project export: the
// raw key/value map, the normalised site descriptor and the quality
// metrics. It is what gets persisted alongside the raw file text.
type ProjectMeta struct {
	Keys map[string]string `json:"keys"`
	Site Site              `json:"site"`
	QM   QualityMetrics    `json:"qm"`
}

// Older g9 versions pack latitude, longitude and elevation into one line:
// "40.123 Long: -3.456 Elev: 650".
var latLonPattern = regexp.MustCompile(`^([0-9.+-]+)\s+Long:\s+([0-9.+-]+)\s+Elev:\s+([0-9.+-]+)`)

// splitLatLon splits a composite latitude value into its three parts. When
// the value is not composite the whole string is kept as latitude and the
// other two parts stay empty.
func splitLatLon(value string) (lat, lon, elev string) {
	if value == "" {
		return "", "", ""
	}
	m := latLonPattern.FindStringSubmatch(value)
	if m == nil {
		return value, "", ""
	}
	return m[1], m[2], m[3]
}

// pick returns the first present, non-blank value among the candidate keys.
func pick(keys map[string]string, names ...string) string {
	for _, n := range names {
		if v, ok := keys[n]; ok && trimmedNonEmpty(v) {
			return v
		}
	}
	return ""
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return true
		}
	}
	return false
}

// ParseProject extracts the key/value map, site descriptor and quality
// metrics from decoded project export text.
func ParseProject(text string) ProjectMeta {
	keys := ExtractKeyValues(text)

	lat, lon, elev := splitLatLon(pick(keys, "Latitude (dd,+N)", "Lat", "Latitude"))

	site := Site{
		ProjectName:        pick(keys, "Project Name"),
		SiteName:           pick(keys, "Site Name", "Name"),
		SiteCode:           pick(keys, "Site Code"),
		Latitude:           lat,
		Longitude:          lon,
		Elevation:          elev,
		Gradient:           pick(keys, "Gradient"),
		SetupHeight:        pick(keys, "Setup Height (cm)", "Setup Height"),
		TransferHeight:     pick(keys, "Transfer Height (cm)", "Transfer Height"),
		FactoryHeight:      pick(keys, "Factory Height (cm)", "Factory Height"),
		BarometerFactor:    pick(keys, "Barometer Factor (µGal/mBar)", "Barometric Admittance Factor"),
		PolarX:             pick(keys, "Polar X (arc sec)", "Polar X"),
		PolarY:             pick(keys, "Polar Y (arc sec)", "Polar Y"),
		Operator:           pick(keys, "Operator"),
		Instrument:         pick(keys, "Meter Type", "Instrument"),
		InstrumentSN:       pick(keys, "Meter S/N", "Serial"),
		AcquisitionVersion: pick(keys, "g Acquisition Version"),
		ProcessingVersion:  pick(keys, "g Processing Version"),
		ProcessingDate:     pick(keys, "Date"),
		ProcessingTime:     pick(keys, "Time"),
		Gravity:            pick(keys, "Gravity (µGal)", "Gravity"),
	}

	qm := QualityMetrics{
		ProjectSetScatter: ParseFloat(pick(keys, "Project Set Scatter (µGal)", "Measurement Precision", "Project Set Scatter")),
		SetScatterOverall: ParseFloat(pick(keys, "Set Scatter (µGal)", "Set Scatter")),
		UncertaintyPerSet: ParseFloat(pick(keys, "Uncertainty per Set (µGal)", "Uncertainty per Set")),
		TotalUncertainty:  ParseFloat(pick(keys, "Total Uncertainty", "Overall Uncertainty")),
		Gravity:           ParseFloat(pick(keys, "Gravity (µGal)", "Gravity")),
	}

	return ProjectMeta{Keys: keys, Site: site, QM: qm}
}
