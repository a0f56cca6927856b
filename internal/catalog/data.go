// Copyright 2024 KNUST Chat Bot Backend Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

// College names as used by the admission brochure.
const (
	CollegeScience     = "College of Science"
	CollegeEngineering = "College of Engineering"
	CollegeHealth      = "College of Health Sciences"
	CollegeHumanities  = "College of Humanities and Social Sciences"
	CollegeArt         = "College of Art and Built Environment"
	CollegeAgriculture = "College of Agriculture and Natural Resources"
)

// validPrograms fixes catalog iteration order; direct-containment extraction
// resolves ties by first match in this order.
var validPrograms = []string{
	"BSc Computer Science",
	"BSc Biological Sciences",
	"BSc Mathematics",
	"BSc Actuarial Science",
	"BSc Statistics",
	"BSc Physics",
	"BSc Chemistry",
	"BSc Biochemistry",
	"BSc Food Science and Technology",
	"BSc Environmental Sciences",
	"BSc Meteorology and Climate Science",
	"Doctor of Optometry",
	"BSc Civil Engineering",
	"BSc Computer Engineering",
	"BSc Electrical/Electronic Engineering",
	"BSc Mechanical Engineering",
	"BSc Chemical Engineering",
	"BSc Petroleum Engineering",
	"BSc Petrochemical Engineering",
	"BSc Geological Engineering",
	"BSc Geomatic Engineering",
	"BSc Materials Engineering",
	"BSc Metallurgical Engineering",
	"BSc Aerospace Engineering",
	"BSc Telecommunication Engineering",
	"BSc Biomedical Engineering",
	"BSc Agricultural Engineering",
	"PharmD (Doctor of Pharmacy)",
	"Doctor of Veterinary Medicine (DVM)",
	"BSc Human Biology (Medicine)",
	"BSc Dental Surgery (BDS)",
	"BSc Nursing",
	"BSc Midwifery",
	"BSc Medical Laboratory Technology",
	"BSc Physiotherapy and Sports Science",
	"BSc Herbal Medicine",
	"BSc Disability and Rehabilitation Studies",
	"BA Economics",
	"LLB",
	"BSc Business Administration",
	"BA Sociology",
	"BA Social Work",
	"BA History",
	"BA Political Studies",
	"BA Geography and Rural Development",
	"BA English",
	"BA French and Francophone Studies",
	"BA Akan Language and Culture",
	"BSc Hospitality and Tourism Management",
	"BSc Architecture",
	"BSc Construction Technology and Management",
	"BSc Quantity Surveying and Construction Economics",
	"BSc Land Economy",
	"BSc Real Estate",
	"BSc Development Planning",
	"BSc Human Settlement Planning",
	"BFA Painting and Sculpture",
	"BA Communication Design",
	"BEd Junior High School Education",
	"BSc Agriculture",
	"BSc Agribusiness Management",
	"BSc Landscape Design and Management",
	"BSc Natural Resources Management",
	"BSc Forest Resources Technology",
	"BSc Aquaculture and Water Resources Management",
}

var programToCollege = map[string]string{
	"BSc Computer Science":                "College of Science",
	"BSc Biological Sciences":             "College of Science",
	"BSc Mathematics":                     "College of Science",
	"BSc Actuarial Science":               "College of Science",
	"BSc Statistics":                      "College of Science",
	"BSc Physics":                         "College of Science",
	"BSc Chemistry":                       "College of Science",
	"BSc Biochemistry":                    "College of Science",
	"BSc Food Science and Technology":     "College of Science",
	"BSc Environmental Sciences":          "College of Science",
	"BSc Meteorology and Climate Science": "College of Science",
	"Doctor of Optometry":                 "College of Science",

	"BSc Civil Engineering":                 "College of Engineering",
	"BSc Computer Engineering":              "College of Engineering",
	"BSc Electrical/Electronic Engineering": "College of Engineering",
	"BSc Mechanical Engineering":            "College of Engineering",
	"BSc Chemical Engineering":              "College of Engineering",
	"BSc Petroleum Engineering":             "College of Engineering",
	"BSc Petrochemical Engineering":         "College of Engineering",
	"BSc Geological Engineering":            "College of Engineering",
	"BSc Geomatic Engineering":              "College of Engineering",
	"BSc Materials Engineering":             "College of Engineering",
	"BSc Metallurgical Engineering":         "College of Engineering",
	"BSc Aerospace Engineering":             "College of Engineering",
	"BSc Telecommunication Engineering":     "College of Engineering",
	"BSc Biomedical Engineering":            "College of Engineering",
	"BSc Agricultural Engineering":          "College of Engineering",

	"PharmD (Doctor of Pharmacy)":               "College of Health Sciences",
	"Doctor of Veterinary Medicine (DVM)":       "College of Health Sciences",
	"BSc Human Biology (Medicine)":              "College of Health Sciences",
	"BSc Dental Surgery (BDS)":                  "College of Health Sciences",
	"BSc Nursing":                               "College of Health Sciences",
	"BSc Midwifery":                             "College of Health Sciences",
	"BSc Medical Laboratory Technology":         "College of Health Sciences",
	"BSc Physiotherapy and Sports Science":      "College of Health Sciences",
	"BSc Herbal Medicine":                       "College of Health Sciences",
	"BSc Disability and Rehabilitation Studies": "College of Health Sciences",

	"BA Economics":                           "College of Humanities and Social Sciences",
	"LLB":                                    "College of Humanities and Social Sciences",
	"BSc Business Administration":            "College of Humanities and Social Sciences",
	"BA Sociology":                           "College of Humanities and Social Sciences",
	"BA Social Work":                         "College of Humanities and Social Sciences",
	"BA History":                             "College of Humanities and Social Sciences",
	"BA Political Studies":                   "College of Humanities and Social Sciences",
	"BA Geography and Rural Development":     "College of Humanities and Social Sciences",
	"BA English":                             "College of Humanities and Social Sciences",
	"BA French and Francophone Studies":      "College of Humanities and Social Sciences",
	"BA Akan Language and Culture":           "College of Humanities and Social Sciences",
	"BSc Hospitality and Tourism Management": "College of Humanities and Social Sciences",

	"BSc Architecture":                                  "College of Art and Built Environment",
	"BSc Construction Technology and Management":        "College of Art and Built Environment",
	"BSc Quantity Surveying and Construction Economics": "College of Art and Built Environment",
	"BSc Land Economy":                                  "College of Art and Built Environment",
	"BSc Real Estate":                                   "College of Art and Built Environment",
	"BSc Development Planning":                          "College of Art and Built Environment",
	"BSc Human Settlement Planning":                     "College of Art and Built Environment",
	"BFA Painting and Sculpture":                        "College of Art and Built Environment",
	"BA Communication Design":                           "College of Art and Built Environment",
	"BEd Junior High School Education":                  "College of Art and Built Environment",

	"BSc Agriculture":                                "College of Agriculture and Natural Resources",
	"BSc Agribusiness Management":                    "College of Agriculture and Natural Resources",
	"BSc Landscape Design and Management":            "College of Agriculture and Natural Resources",
	"BSc Natural Resources Management":               "College of Agriculture and Natural Resources",
	"BSc Forest Resources Technology":                "College of Agriculture and Natural Resources",
	"BSc Aquaculture and Water Resources Management": "College of Agriculture and Natural Resources",
}

// cutOffAggregates lists the 2024/2025 published cut-off points. Programmes
// absent from this table have no published figure and render as "N/A".
var cutOffAggregates = map[string]Cutoff{
	"BSc Computer Science":                {Combined: 8},
	"BSc Biological Sciences":             {Combined: 12},
	"BSc Mathematics":                     {Combined: 16},
	"BSc Actuarial Science":               {Combined: 10},
	"BSc Statistics":                      {Combined: 15},
	"BSc Physics":                         {Combined: 18},
	"BSc Chemistry":                       {Combined: 16},
	"BSc Biochemistry":                    {Combined: 11},
	"BSc Food Science and Technology":     {Combined: 14},
	"BSc Environmental Sciences":          {Combined: 17},
	"BSc Meteorology and Climate Science": {Combined: 19},
	"Doctor of Optometry":                 {Combined: 8},

	"BSc Civil Engineering":                 {Combined: 9},
	"BSc Computer Engineering":              {Combined: 8},
	"BSc Electrical/Electronic Engineering": {Combined: 8},
	"BSc Mechanical Engineering":            {Combined: 9},
	"BSc Chemical Engineering":              {Combined: 10},
	"BSc Petroleum Engineering":             {Combined: 6},
	"BSc Petrochemical Engineering":         {Combined: 8},
	"BSc Geological Engineering":            {Combined: 10},
	"BSc Geomatic Engineering":              {Combined: 14},
	"BSc Materials Engineering":             {Combined: 13},
	"BSc Metallurgical Engineering":         {Combined: 15},
	"BSc Aerospace Engineering":             {Combined: 7},
	"BSc Telecommunication Engineering":     {Combined: 11},
	"BSc Biomedical Engineering":            {Combined: 7},
	"BSc Agricultural Engineering":          {Combined: 16},

	"PharmD (Doctor of Pharmacy)":          {Combined: 7},
	"Doctor of Veterinary Medicine (DVM)":  {Combined: 14},
	"BSc Human Biology (Medicine)":         {Male: 7, Female: 8},
	"BSc Dental Surgery (BDS)":             {Male: 8, Female: 9},
	"BSc Nursing":                          {Male: 10, Female: 11},
	"BSc Midwifery":                        {Combined: 12},
	"BSc Medical Laboratory Technology":    {Combined: 9},
	"BSc Physiotherapy and Sports Science": {Combined: 13},
	"BSc Herbal Medicine":                  {Combined: 15},

	"BA Economics":                           {Combined: 9},
	"LLB":                                    {Combined: 6},
	"BSc Business Administration":            {Combined: 8},
	"BA Sociology":                           {Combined: 13},
	"BA Social Work":                         {Combined: 14},
	"BA History":                             {Combined: 18},
	"BA Political Studies":                   {Combined: 11},
	"BA Geography and Rural Development":     {Combined: 15},
	"BA English":                             {Combined: 13},
	"BA French and Francophone Studies":      {Combined: 17},
	"BA Akan Language and Culture":           {Combined: 20},
	"BSc Hospitality and Tourism Management": {Combined: 16},

	"BSc Architecture":                                  {Combined: 8},
	"BSc Construction Technology and Management":        {Combined: 14},
	"BSc Quantity Surveying and Construction Economics": {Combined: 12},
	"BSc Land Economy":                                  {Combined: 11},
	"BSc Real Estate":                                   {Combined: 13},
	"BSc Development Planning":                          {Combined: 10},
	"BSc Human Settlement Planning":                     {Combined: 14},
	"BA Communication Design":                           {Combined: 16},

	"BSc Agriculture":                                {Combined: 19},
	"BSc Agribusiness Management":                    {Combined: 15},
	"BSc Landscape Design and Management":            {Combined: 21},
	"BSc Natural Resources Management":               {Combined: 18},
	"BSc Forest Resources Technology":                {Combined: 20},
	"BSc Aquaculture and Water Resources Management": {Combined: 21},
}

// collegeFees is the fresher fee schedule per college in Ghana cedis.
var collegeFees = map[string]Fees{
	"College of Science":                           {Regular: 2154.00, FeePaying: 5891.00, Residential: 3126.00},
	"College of Engineering":                       {Regular: 2304.00, FeePaying: 6610.00, Residential: 3276.00},
	"College of Health Sciences":                   {Regular: 2576.00, FeePaying: 7868.00, Residential: 3548.00},
	"College of Humanities and Social Sciences":    {Regular: 1935.00, FeePaying: 5118.00, Residential: 2907.00},
	"College of Art and Built Environment":         {Regular: 2066.00, FeePaying: 5489.00, Residential: 3038.00},
	"College of Agriculture and Natural Resources": {Regular: 2011.00, FeePaying: 5236.00, Residential: 2983.00},
}

// defaultFees applies when a programme's college has no fee entry.
var defaultFees = Fees{Regular: 2100.00, FeePaying: 5500.00, Residential: 3050.00}

// electiveRequirements lists SHS elective requirements. Programmes absent from
// this table have no recorded requirements and the section is omitted from
// responses.
var electiveRequirements = map[string][]Requirement{
	"BSc Computer Science": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Applied Electricity", "Electronics"}},
	},
	"BSc Biological Sciences": {
		{Subject: "Biology"},
		{Subject: "Chemistry"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Mathematics": {
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Chemistry", "Biology"}},
	},
	"BSc Actuarial Science": {
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Chemistry", "Economics", "Business Management"}},
	},
	"BSc Statistics": {
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Chemistry", "Economics", "Geography"}},
	},
	"BSc Physics": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Applied Electricity"}},
	},
	"BSc Chemistry": {
		{Subject: "Chemistry"},
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Biology"}},
	},
	"BSc Biochemistry": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Food Science and Technology": {
		{Subject: "Chemistry"},
		{Options: []string{"Biology", "Food and Nutrition"}},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"Doctor of Optometry": {
		{Subject: "Biology"},
		{Subject: "Chemistry"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Civil Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Subject: "Chemistry"},
	},
	"BSc Computer Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Applied Electricity", "Electronics"}},
	},
	"BSc Electrical/Electronic Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Applied Electricity", "Electronics"}},
	},
	"BSc Mechanical Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Metalwork", "Technical Drawing"}},
	},
	"BSc Chemical Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Subject: "Chemistry"},
	},
	"BSc Petroleum Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Subject: "Chemistry"},
	},
	"BSc Petrochemical Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Subject: "Chemistry"},
	},
	"BSc Geological Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Geography"}},
	},
	"BSc Geomatic Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Geography", "Technical Drawing"}},
	},
	"BSc Aerospace Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Applied Electricity", "Electronics"}},
	},
	"BSc Biomedical Engineering": {
		{Subject: "Elective Mathematics"},
		{Subject: "Physics"},
		{Options: []string{"Chemistry", "Biology"}},
	},
	"PharmD (Doctor of Pharmacy)": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"Doctor of Veterinary Medicine (DVM)": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Human Biology (Medicine)": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Dental Surgery (BDS)": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Nursing": {
		{Subject: "Biology"},
		{Options: []string{"Chemistry", "Physics"}},
		{Options: []string{"Elective Mathematics", "General Agriculture"}},
	},
	"BSc Midwifery": {
		{Subject: "Biology"},
		{Options: []string{"Chemistry", "Physics"}},
		{Options: []string{"Elective Mathematics", "General Agriculture"}},
	},
	"BSc Medical Laboratory Technology": {
		{Subject: "Chemistry"},
		{Subject: "Biology"},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BA Economics": {
		{Subject: "Economics"},
		{Options: []string{"Elective Mathematics", "Business Mathematics"}},
		{Options: []string{"Geography", "Government", "History", "Accounting"}},
	},
	"LLB": {
		{Options: []string{"Literature in English", "History", "Government"}},
		{Options: []string{"Economics", "Geography", "French"}},
		{Options: []string{"Christian Religious Studies", "Islamic Religious Studies", "Akan"}},
	},
	"BSc Business Administration": {
		{Options: []string{"Business Management", "Economics"}},
		{Options: []string{"Accounting", "Costing", "Elective Mathematics"}},
		{Options: []string{"Geography", "Government", "French"}},
	},
	"BA Sociology": {
		{Options: []string{"Government", "History", "Economics"}},
		{Options: []string{"Geography", "Literature in English", "Akan"}},
		{Options: []string{"Christian Religious Studies", "Islamic Religious Studies", "French"}},
	},
	"BA Geography and Rural Development": {
		{Subject: "Geography"},
		{Options: []string{"Economics", "Government", "History"}},
		{Options: []string{"Elective Mathematics", "Akan", "French"}},
	},
	"BSc Architecture": {
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Technical Drawing"}},
		{Options: []string{"Chemistry", "Geography", "Economics", "General Knowledge in Art"}},
	},
	"BSc Quantity Surveying and Construction Economics": {
		{Subject: "Elective Mathematics"},
		{Options: []string{"Physics", "Technical Drawing"}},
		{Options: []string{"Economics", "Geography", "Building Construction"}},
	},
	"BSc Land Economy": {
		{Subject: "Economics"},
		{Options: []string{"Elective Mathematics", "Geography"}},
		{Options: []string{"Government", "History", "Accounting", "Business Management"}},
	},
	"BSc Development Planning": {
		{Options: []string{"Economics", "Geography"}},
		{Options: []string{"Elective Mathematics", "Government"}},
		{Options: []string{"History", "Akan", "French", "Business Management"}},
	},
	"BFA Painting and Sculpture": {
		{Subject: "General Knowledge in Art"},
		{Options: []string{"Picture Making", "Sculpture", "Ceramics", "Leatherwork"}},
		{Options: []string{"Graphic Design", "Textiles", "Literature in English"}},
	},
	"BSc Agriculture": {
		{Subject: "Chemistry"},
		{Options: []string{"Biology", "General Agriculture"}},
		{Options: []string{"Physics", "Elective Mathematics"}},
	},
	"BSc Agribusiness Management": {
		{Options: []string{"Business Management", "Economics", "General Agriculture"}},
		{Options: []string{"Accounting", "Elective Mathematics"}},
		{Options: []string{"Chemistry", "Biology", "Geography"}},
	},
	"BSc Natural Resources Management": {
		{Subject: "Chemistry"},
		{Options: []string{"Biology", "General Agriculture"}},
		{Options: []string{"Physics", "Elective Mathematics", "Geography"}},
	},
}
