package extraction

import (
	"fmt"

	"docsense/pkg/models"
)

const cvShape = `{
  "personalInfo": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "portfolio": ""},
  "summary": "",
  "objective": "",
  "experience": [{"title": "", "company": "", "location": "", "duration": "", "startDate": "", "endDate": "", "description": "", "technologies": [], "achievements": []}],
  "education": [{"degree": "", "institution": "", "field": "", "location": "", "startDate": "", "endDate": "", "gpa": "", "achievements": []}],
  "skills": {"technical": [], "soft": [], "tools": [], "frameworks": [], "databases": [], "languages": []},
  "certifications": [{"name": "", "issuer": "", "date": "", "expiry": "", "credentialId": "", "url": ""}],
  "projects": [{"name": "", "description": "", "technologies": [], "url": "", "startDate": "", "endDate": ""}],
  "awards": [{"title": "", "issuer": "", "date": "", "description": ""}],
  "publications": [{"title": "", "publisher": "", "date": "", "url": ""}],
  "volunteer": [{"role": "", "organization": "", "startDate": "", "endDate": "", "description": ""}],
  "references": [{"name": "", "relationship": "", "contact": ""}]
}`

const jdShape = `{
  "jobTitle": "",
  "company": "",
  "location": "",
  "employmentType": "full-time|part-time|contract|internship|temporary|freelance",
  "experienceLevel": "entry|mid|senior|lead|executive",
  "salary": {"min": 0, "max": 0, "currency": "", "period": "hourly|monthly|yearly"},
  "remoteOption": "onsite|remote|hybrid",
  "summary": "",
  "aboutCompany": "",
  "responsibilities": [],
  "requirements": {"required": [], "preferred": [], "education": {"level": "", "field": ""}, "experience": {"minYears": 0, "maxYears": 0, "description": ""}},
  "skills": {"technical": [], "soft": [], "tools": [], "frameworks": [], "databases": [], "languages": []},
  "benefits": [],
  "department": "",
  "teamSize": ""
}`

const instructionTemplate = `You convert %s text into structured data.
Respond with a single JSON object and nothing else: no markdown fences, no commentary.
Use exactly this shape:
%s
Rules:
- Only use information present in the text. Leave unknown strings empty and unknown lists empty.
- Keep dates as written in the text (for example "Jan 2020", "2020-01", "Present").
- Split skills into the listed categories; put anything unclear under "technical".
- Never invent contact details, employers, or salaries.`

// SystemInstruction returns the type-specific instruction sent with every extraction
func SystemInstruction(docType models.DocumentType) string {
	if docType == models.DocumentTypeJD {
		return fmt.Sprintf(instructionTemplate, "job description", jdShape)
	}
	return fmt.Sprintf(instructionTemplate, "résumé / CV", cvShape)
}

// Prompt wraps the cleaned document text
func Prompt(docType models.DocumentType, text string) string {
	label := "CV"
	if docType == models.DocumentTypeJD {
		label = "JOB DESCRIPTION"
	}
	return fmt.Sprintf("%s TEXT:\n\n%s", label, text)
}
