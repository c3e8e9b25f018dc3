// File: internal/services/knowledge/corpus.go
package knowledge

// Condition is one knowledge-base entry for a medical condition. Optional
// fields stay empty for entries that do not carry them; JSON omitempty keeps
// the rendered document clean.
type Condition struct {
	Condition              string              `json:"condition"`
	LocalNames             map[string]string   `json:"local_names,omitempty"`
	Symptoms               []string            `json:"symptoms,omitempty"`
	LocalSymptoms          map[string][]string `json:"local_symptoms,omitempty"`
	Treatment              string              `json:"treatment,omitempty"`
	Prevention             string              `json:"prevention,omitempty"`
	EmergencySigns         []string            `json:"emergency_signs,omitempty"`
	PrevalenceUganda       string              `json:"prevalence_uganda,omitempty"`
	SeasonalPatterns       string              `json:"seasonal_patterns,omitempty"`
	CareGuidelines         []string            `json:"care_guidelines,omitempty"`
	WarningSigns           []string            `json:"warning_signs,omitempty"`
	DeliveryPreparation    string              `json:"delivery_preparation,omitempty"`
	Schedule               map[string]string   `json:"schedule,omitempty"`
	Management             []string            `json:"management,omitempty"`
	Complications          []string            `json:"complications,omitempty"`
	Support                []string            `json:"support,omitempty"`
	CulturalConsiderations string              `json:"cultural_considerations,omitempty"`
}

// Protocol is a fixed emergency response protocol.
type Protocol struct {
	Signs  []string `json:"signs,omitempty"`
	Action []string `json:"action"`
}

// Medication is one entry in the medication guide.
type Medication struct {
	Uses           string `json:"uses"`
	Dosage         string `json:"dosage,omitempty"`
	Precautions    string `json:"precautions,omitempty"`
	Preparation    string `json:"preparation,omitempty"`
	Administration string `json:"administration,omitempty"`
}

// medicalConditions groups conditions by disease family. Content targets the
// Ugandan healthcare context with Luganda and Swahili local names.
func medicalConditions() map[string][]Condition {
	return map[string][]Condition{
		"infectious_diseases": {
			{
				Condition: "Malaria",
				LocalNames: map[string]string{
					"luganda": "Omusujja gw'ensiri",
					"swahili": "Malaria",
				},
				Symptoms: []string{
					"Fever and chills",
					"Headache",
					"Muscle aches",
					"Nausea and vomiting",
					"Fatigue",
				},
				LocalSymptoms: map[string][]string{
					"luganda": {"Omusujja", "Omutwe gukuba", "Okudduka", "Okusesema"},
					"swahili": {"Homa", "Maumivu ya kichwa", "Kutapika", "Uchovu"},
				},
				Treatment:  "Seek immediate medical attention. Use prescribed antimalarial medications like Artemether-Lumefantrine (Coartem).",
				Prevention: "Use insecticide-treated bed nets, eliminate stagnant water, use repellents",
				EmergencySigns: []string{
					"Severe headache",
					"Convulsions",
					"Repeated vomiting",
					"Difficulty breathing",
					"Loss of consciousness",
				},
				PrevalenceUganda: "High - especially in endemic areas",
				SeasonalPatterns: "Peak during rainy seasons (March-May, September-November)",
			},
			{
				Condition: "Typhoid Fever",
				LocalNames: map[string]string{
					"luganda": "Omusujja gw'ekyenda",
					"swahili": "Homa ya typhoid",
				},
				Symptoms: []string{
					"Sustained high fever",
					"Headache",
					"Abdominal pain",
					"Constipation or diarrhea",
					"Rose-colored rash",
				},
				Treatment:  "Antibiotic therapy (Ciprofloxacin, Azithromycin). Hospital admission may be required.",
				Prevention: "Safe water, proper sanitation, typhoid vaccination",
				EmergencySigns: []string{
					"High fever over 39°C",
					"Severe abdominal pain",
					"Bleeding",
					"Confusion",
				},
			},
			{
				Condition: "Tuberculosis (TB)",
				LocalNames: map[string]string{
					"luganda": "Akafuba",
					"swahili": "Kifua kikuu",
				},
				Symptoms: []string{
					"Persistent cough for >3 weeks",
					"Coughing up blood",
					"Chest pain",
					"Weight loss",
					"Night sweats",
					"Fatigue",
				},
				Treatment:  "6-month course of anti-TB medications. Directly Observed Treatment (DOTS).",
				Prevention: "BCG vaccination, avoid crowded spaces, good ventilation",
				EmergencySigns: []string{
					"Coughing up large amounts of blood",
					"Severe breathing difficulty",
					"Chest pain",
				},
			},
		},
		"maternal_child_health": {
			{
				Condition: "Pregnancy Care",
				LocalNames: map[string]string{
					"luganda": "Okubba olubuto",
					"swahili": "Huduma za uzazi",
				},
				CareGuidelines: []string{
					"Attend at least 4 antenatal visits",
					"Take folic acid and iron supplements",
					"Get tested for HIV, syphilis, malaria",
					"Avoid alcohol and smoking",
					"Eat nutritious foods",
				},
				WarningSigns: []string{
					"Severe headache",
					"Blurred vision",
					"Swelling of face and hands",
					"Severe abdominal pain",
					"Bleeding",
					"Reduced fetal movements",
				},
				DeliveryPreparation: "Identify skilled birth attendant, prepare emergency transport",
			},
			{
				Condition: "Child Immunization",
				Schedule: map[string]string{
					"birth":     "BCG, OPV0, Hepatitis B",
					"6_weeks":   "OPV1, DPT1, Hepatitis B1, Pneumococcal1",
					"10_weeks":  "OPV2, DPT2, Hepatitis B2, Pneumococcal2",
					"14_weeks":  "OPV3, DPT3, Hepatitis B3, Pneumococcal3",
					"9_months":  "Measles, Yellow Fever",
					"18_months": "Measles2, DPT4, OPV4",
				},
			},
		},
		"non_communicable_diseases": {
			{
				Condition: "Hypertension",
				LocalNames: map[string]string{
					"luganda": "Omusaayi ogukwaata",
					"swahili": "Shinikizo la damu",
				},
				Symptoms: []string{
					"Often asymptomatic",
					"Headaches",
					"Dizziness",
					"Chest pain",
					"Shortness of breath",
				},
				Management: []string{
					"Regular blood pressure monitoring",
					"Lifestyle modifications",
					"Medication adherence",
					"Reduce salt intake",
					"Regular exercise",
					"Weight management",
				},
				Complications: []string{
					"Stroke",
					"Heart attack",
					"Kidney disease",
					"Eye damage",
				},
			},
			{
				Condition: "Diabetes",
				LocalNames: map[string]string{
					"luganda": "Endwadde y'asukali",
					"swahili": "Kisukari",
				},
				Symptoms: []string{
					"Excessive thirst",
					"Frequent urination",
					"Extreme hunger",
					"Unexplained weight loss",
					"Blurred vision",
					"Slow-healing wounds",
				},
				Management: []string{
					"Blood sugar monitoring",
					"Healthy diet",
					"Regular exercise",
					"Medication adherence",
					"Foot care",
					"Regular medical checkups",
				},
			},
		},
		"mental_health": {
			{
				Condition: "Depression",
				LocalNames: map[string]string{
					"luganda": "Okunakuwala ennyo",
					"swahili": "Unyogovu",
				},
				Symptoms: []string{
					"Persistent sadness",
					"Loss of interest",
					"Fatigue",
					"Sleep disturbances",
					"Appetite changes",
					"Difficulty concentrating",
					"Feelings of worthlessness",
				},
				Support: []string{
					"Talk to trusted friend or counselor",
					"Join support groups",
					"Maintain regular routine",
					"Exercise regularly",
					"Seek professional help",
				},
				CulturalConsiderations: "Address stigma, involve family support, respect traditional healing practices",
			},
		},
	}
}

// symptomsMapping links a symptom key to the conditions it suggests. Keys use
// underscores; matching also tries each underscore-separated component word.
func symptomsMapping() map[string][]string {
	return map[string][]string{
		"fever":               {"Malaria", "Typhoid", "Pneumonia", "UTI", "Dengue"},
		"headache":            {"Malaria", "Typhoid", "Hypertension", "Migraine", "Meningitis"},
		"cough":               {"Tuberculosis", "Pneumonia", "Asthma", "Common cold", "COVID-19"},
		"abdominal_pain":      {"Typhoid", "Appendicitis", "Gastritis", "UTI", "Food poisoning"},
		"diarrhea":            {"Cholera", "Food poisoning", "Dysentery", "IBS", "Gastroenteritis"},
		"chest_pain":          {"Heart attack", "Pneumonia", "Asthma", "GERD", "Anxiety"},
		"shortness_of_breath": {"Asthma", "Pneumonia", "Heart failure", "Anemia", "COVID-19"},
		"weight_loss":         {"Tuberculosis", "Diabetes", "Cancer", "HIV/AIDS", "Hyperthyroidism"},
		"fatigue":             {"Malaria", "Anemia", "Depression", "Diabetes", "Thyroid disorders"},
	}
}

func emergencyProtocols() map[string]Protocol {
	return map[string]Protocol{
		"cardiac_arrest": {
			Signs: []string{"No pulse", "Unconscious", "Not breathing"},
			Action: []string{
				"Call emergency services immediately",
				"Start CPR if trained",
				"Use AED if available",
				"Continue until help arrives",
			},
		},
		"severe_bleeding": {
			Action: []string{
				"Apply direct pressure",
				"Elevate injured area",
				"Use clean cloth or bandage",
				"Seek immediate medical help",
			},
		},
		"stroke": {
			Signs: []string{"Face drooping", "Arm weakness", "Speech difficulty"},
			Action: []string{
				"Note time of symptom onset",
				"Call emergency services",
				"Do not give food or water",
				"Keep patient calm and lying down",
			},
		},
		"severe_allergic_reaction": {
			Signs: []string{"Difficulty breathing", "Swelling", "Rapid pulse", "Dizziness"},
			Action: []string{
				"Use epinephrine if available",
				"Call emergency services",
				"Loosen tight clothing",
				"Monitor breathing and pulse",
			},
		},
	}
}

// PreventiveCare holds preventive care guidance grouped by concern.
type PreventiveCare struct {
	GeneralHealth       []string          `json:"general_health,omitempty"`
	AdultVaccinations   []string          `json:"adult_vaccinations,omitempty"`
	ScreeningGuidelines map[string]string `json:"screening_guidelines,omitempty"`
}

func preventiveCare() map[string]PreventiveCare {
	return map[string]PreventiveCare{
		"general_health": {
			GeneralHealth: []string{
				"Regular health checkups",
				"Maintain healthy diet",
				"Exercise regularly",
				"Adequate sleep (7-9 hours)",
				"Manage stress",
				"Avoid tobacco and excessive alcohol",
				"Practice safe sex",
				"Maintain good hygiene",
			},
		},
		"vaccination_schedule": {
			AdultVaccinations: []string{
				"Annual flu vaccine",
				"COVID-19 boosters",
				"Hepatitis B (if at risk)",
				"Yellow fever (for travel)",
				"Meningitis (for high-risk areas)",
			},
		},
		"screening_guidelines": {
			ScreeningGuidelines: map[string]string{
				"blood_pressure":    "Every 2 years if normal",
				"cholesterol":       "Every 5 years after age 20",
				"diabetes":          "Every 3 years after age 45",
				"cervical_cancer":   "Every 3 years (ages 21-65)",
				"breast_cancer":     "Annual mammogram after age 50",
				"colorectal_cancer": "Every 10 years after age 50",
			},
		},
	}
}

func medicationGuide() map[string]Medication {
	return map[string]Medication{
		"paracetamol": {
			Uses:        "Pain relief, fever reduction",
			Dosage:      "Adults: 500-1000mg every 4-6 hours, max 4g/day",
			Precautions: "Check for liver disease, avoid alcohol",
		},
		"ibuprofen": {
			Uses:        "Pain relief, inflammation, fever",
			Dosage:      "Adults: 200-400mg every 4-6 hours, max 1200mg/day",
			Precautions: "Avoid with stomach ulcers, kidney disease",
		},
		"oral_rehydration_salts": {
			Uses:           "Dehydration from diarrhea/vomiting",
			Preparation:    "Mix 1 sachet with 1 liter clean water",
			Administration: "Small frequent sips",
		},
	}
}

var medicationSafety = []string{
	"Always complete antibiotic courses",
	"Don't share prescription medications",
	"Check expiry dates",
	"Store medications properly",
	"Follow dosage instructions carefully",
	"Report side effects to healthcare provider",
}

// translations maps common medical terms per supported language.
func translations() map[string]map[string]string {
	return map[string]map[string]string{
		"english": {
			"doctor":    "Doctor",
			"medicine":  "Medicine",
			"hospital":  "Hospital",
			"pain":      "Pain",
			"fever":     "Fever",
			"treatment": "Treatment",
		},
		"luganda": {
			"doctor":    "Omusawo",
			"medicine":  "Eddagala",
			"hospital":  "Eddwaliro",
			"pain":      "Obulumi",
			"fever":     "Omusujja",
			"treatment": "Obujjanjabi",
		},
		"swahili": {
			"doctor":    "Daktari",
			"medicine":  "Dawa",
			"hospital":  "Hospitali",
			"pain":      "Maumivu",
			"fever":     "Homa",
			"treatment": "Matibabu",
		},
	}
}
