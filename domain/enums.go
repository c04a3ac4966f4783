package domain

import "strings"

// Taxonomy enums for the space-biology corpus. Values are the display
// strings stored on papers and returned by the filter-values endpoint.

// StudyType classifies the methodology of a paper.
type StudyType string

const (
	StudyTypeCaseReport                   StudyType = "Case report"
	StudyTypeCommentary                   StudyType = "Commentary"
	StudyTypeComparativeGenomics          StudyType = "Comparative genomics"
	StudyTypeComputationalStudy           StudyType = "Computational study"
	StudyTypeDataRepository               StudyType = "Data repository"
	StudyTypeDoseResponseStudy            StudyType = "Dose response study"
	StudyTypeExperimentalStudy            StudyType = "Experimental study"
	StudyTypeGenomicAnalysis              StudyType = "Genomic analysis"
	StudyTypeHardwareValidation           StudyType = "Hardware validation"
	StudyTypeHypothesisPaper              StudyType = "Hypothesis paper"
	StudyTypeInSilicoStudy                StudyType = "In silico study"
	StudyTypeIntegratedMultiOmics         StudyType = "Integrated multi-omics"
	StudyTypeLongitudinalStudy            StudyType = "Longitudinal study"
	StudyTypeMendelianRandomization       StudyType = "Mendelian randomization"
	StudyTypeMetaAnalysis                 StudyType = "Meta analysis"
	StudyTypeMethodDevelopment            StudyType = "Method development"
	StudyTypeObservationalStudy           StudyType = "Observational study"
	StudyTypePerspective                  StudyType = "Perspective"
	StudyTypePreclinicalStudy             StudyType = "Preclinical study"
	StudyTypeProtocolDescription          StudyType = "Protocol description"
	StudyTypeQuantitativeNaturalVariation StudyType = "Quantitative natural variation"
	StudyTypeRandomizedControlledTrial    StudyType = "Randomized controlled trial"
	StudyTypeReanalysis                   StudyType = "Reanalysis"
	StudyTypeRepeatedMeasuresDesign       StudyType = "Repeated measures design"
	StudyTypeReview                       StudyType = "Review"
	StudyTypeSystemsBiologyStudy          StudyType = "Systems biology study"
	StudyTypeTheoreticalModel             StudyType = "Theoretical model"
	StudyTypeTranslationalResearch        StudyType = "Translational research"
	StudyTypeValidationStudy              StudyType = "Validation study"
)

// Organism is the primary organism studied.
type Organism string

const (
	OrganismRat           Organism = "Rat"
	OrganismMouse         Organism = "Mouse"
	OrganismHuman         Organism = "Human"
	OrganismHumanCells    Organism = "Human cells"
	OrganismPlant         Organism = "Plant"
	OrganismInsect        Organism = "Insect"
	OrganismNematode      Organism = "Nematode"
	OrganismMicroorganism Organism = "Microorganism"
	OrganismOther         Organism = "Other"
)

// ExperimentalPlatform is where the experiment was carried out.
type ExperimentalPlatform string

const (
	PlatformISS             ExperimentalPlatform = "International Space Station"
	PlatformSpaceShuttle    ExperimentalPlatform = "Space Shuttle"
	PlatformSatellite       ExperimentalPlatform = "Satellite"
	PlatformParabolicFlight ExperimentalPlatform = "Parabolic flight"
	PlatformSoundingRocket  ExperimentalPlatform = "Sounding rocket"
	PlatformGroundAnalog    ExperimentalPlatform = "Ground analog"
	PlatformClinostat       ExperimentalPlatform = "Clinostat / RPM"
	PlatformBedRest         ExperimentalPlatform = "Bed rest study"
	PlatformLaboratory      ExperimentalPlatform = "Laboratory"
)

// Stressor is a space-environment stressor under study.
type Stressor string

const (
	StressorMicrogravity        Stressor = "Microgravity"
	StressorRadiation           Stressor = "Ionizing radiation"
	StressorHypergravity        Stressor = "Hypergravity"
	StressorIsolation           Stressor = "Isolation and confinement"
	StressorHypoxia             Stressor = "Hypoxia"
	StressorTemperature         Stressor = "Temperature extremes"
	StressorVacuum              Stressor = "Vacuum exposure"
	StressorCircadianDisruption Stressor = "Circadian disruption"
)

// SpaceAgency is an agency or entity involved in the work.
type SpaceAgency string

const (
	AgencyNASA            SpaceAgency = "NASA"
	AgencyESA             SpaceAgency = "ESA"
	AgencyJAXA            SpaceAgency = "JAXA"
	AgencyCSA             SpaceAgency = "CSA"
	AgencyCNSA            SpaceAgency = "CNSA"
	AgencyRoscosmos       SpaceAgency = "ROSCOSMOS"
	AgencyDLR             SpaceAgency = "DLR"
	AgencyUKSA            SpaceAgency = "UKSA"
	AgencyCASIS           SpaceAgency = "CASIS"
	AgencyISSNationalLab  SpaceAgency = "ISS National Lab"
	AgencySpaceX          SpaceAgency = "SpaceX"
	AgencyOtherGovernment SpaceAgency = "Other Government Agency"
	AgencyOtherAcademic   SpaceAgency = "Other Academic Institution"
	AgencyOtherCommercial SpaceAgency = "Other Commercial Entity"
	AgencyHistorical      SpaceAgency = "Historical Agency"
)

// Filter field names. Search filters address papers by these names; they
// match the column names in the store.
const (
	FilterStudyTypes = "study_types"
	FilterOrganisms  = "organisms"
	FilterPlatforms  = "platforms"
	FilterStressors  = "stressors"
	FilterAgencies   = "agencies"
)

func StudyTypeValues() []string {
	return []string{
		string(StudyTypeCaseReport), string(StudyTypeCommentary),
		string(StudyTypeComparativeGenomics), string(StudyTypeComputationalStudy),
		string(StudyTypeDataRepository), string(StudyTypeDoseResponseStudy),
		string(StudyTypeExperimentalStudy), string(StudyTypeGenomicAnalysis),
		string(StudyTypeHardwareValidation), string(StudyTypeHypothesisPaper),
		string(StudyTypeInSilicoStudy), string(StudyTypeIntegratedMultiOmics),
		string(StudyTypeLongitudinalStudy), string(StudyTypeMendelianRandomization),
		string(StudyTypeMetaAnalysis), string(StudyTypeMethodDevelopment),
		string(StudyTypeObservationalStudy), string(StudyTypePerspective),
		string(StudyTypePreclinicalStudy), string(StudyTypeProtocolDescription),
		string(StudyTypeQuantitativeNaturalVariation), string(StudyTypeRandomizedControlledTrial),
		string(StudyTypeReanalysis), string(StudyTypeRepeatedMeasuresDesign),
		string(StudyTypeReview), string(StudyTypeSystemsBiologyStudy),
		string(StudyTypeTheoreticalModel), string(StudyTypeTranslationalResearch),
		string(StudyTypeValidationStudy),
	}
}

func OrganismValues() []string {
	return []string{
		string(OrganismRat), string(OrganismMouse), string(OrganismHuman),
		string(OrganismHumanCells), string(OrganismPlant), string(OrganismInsect),
		string(OrganismNematode), string(OrganismMicroorganism), string(OrganismOther),
	}
}

func PlatformValues() []string {
	return []string{
		string(PlatformISS), string(PlatformSpaceShuttle), string(PlatformSatellite),
		string(PlatformParabolicFlight), string(PlatformSoundingRocket),
		string(PlatformGroundAnalog), string(PlatformClinostat),
		string(PlatformBedRest), string(PlatformLaboratory),
	}
}

func StressorValues() []string {
	return []string{
		string(StressorMicrogravity), string(StressorRadiation),
		string(StressorHypergravity), string(StressorIsolation),
		string(StressorHypoxia), string(StressorTemperature),
		string(StressorVacuum), string(StressorCircadianDisruption),
	}
}

func SpaceAgencyValues() []string {
	return []string{
		string(AgencyNASA), string(AgencyESA), string(AgencyJAXA), string(AgencyCSA),
		string(AgencyCNSA), string(AgencyRoscosmos), string(AgencyDLR),
		string(AgencyUKSA), string(AgencyCASIS), string(AgencyISSNationalLab),
		string(AgencySpaceX), string(AgencyOtherGovernment),
		string(AgencyOtherAcademic), string(AgencyOtherCommercial),
		string(AgencyHistorical),
	}
}

// FilterValues lists every taxonomy facet with its allowed values.
func FilterValues() []FilterValue {
	return []FilterValue{
		{Name: FilterStudyTypes, Label: "Study Type", Values: StudyTypeValues()},
		{Name: FilterPlatforms, Label: "Experimental Platform", Values: PlatformValues()},
		{Name: FilterStressors, Label: "Space Environment Stressors", Values: StressorValues()},
		{Name: FilterOrganisms, Label: "Primary Organisms Studied", Values: OrganismValues()},
		{Name: FilterAgencies, Label: "Space Agency Involvement", Values: SpaceAgencyValues()},
	}
}

// EnumFromString resolves a raw string against a value set, matching
// case-insensitively and accepting the name form with underscores in place
// of spaces ("iss_national_lab" resolves to "ISS National Lab"). Returns
// the canonical value and whether it matched. Model outputs and client
// payloads are inconsistent in casing and form, so exact matching would
// reject otherwise valid values.
func EnumFromString(raw string, values []string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	nameForm := strings.ReplaceAll(raw, "_", " ")
	for _, v := range values {
		if strings.EqualFold(raw, v) || strings.EqualFold(nameForm, v) {
			return v, true
		}
	}
	return "", false
}
