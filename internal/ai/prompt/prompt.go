// Package prompt holds the audit instructions sent to every provider and the
// decoding of their replies.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

const auditTemplate = `
Act as a Senior Building Automation Systems (BAS) Operations Manager and Safety Compliance Officer.
Audit this field service report: "%s"

Analyze for:
1. SAFETY (CRITICAL): Check for bypassed interlocks, disabled safeties (freeze stats, high static), forced outputs without verification.
2. TECHNICAL KNOWLEDGE: Score 1-5. Did they troubleshoot logic/sequence or just symptoms?
3. PROFESSIONALISM: Score 1-5. Is it clear and objective?
4. FOLLOW-UP: Is further action required based on the report?
5. REWRITE: Rewrite the report to be client-ready. It must be professional, clear, and technically accurate.
   IMPORTANT: Use Markdown formatting for the rewrite.
   - Use **bold** for key metrics or equipment names.
   - Use bullet points (- ) for lists of actions taken.
   - Use headers (###) for sections if needed.

Return a JSON object matching this schema:
{
  "isSafe": boolean,
  "safetyRiskDescription": string (only if unsafe, explain exactly what is compromised),
  "technicalScore": number (1-5),
  "technicalAnalysis": string,
  "professionalismScore": number (1-5),
  "professionalismAnalysis": string,
  "overridesActive": boolean,
  "overridesList": string[] (list points left in Hand/Manual),
  "networkIssues": boolean,
  "followUpRequired": boolean,
  "followUpDetails": string (if required, explain what needs to be done. IMPORTANT: Use **bold** for equipment names and system names),
  "coachFeedback": string,
  "clientRewrite": string
}
`

// SystemPrompt is sent as the system message by chat-style providers.
const SystemPrompt = "You are a meticulous building automation auditor. Respond with a single JSON object only, no markdown fences and no commentary."

// Build embeds the report text verbatim into the audit instructions.
func Build(reportText string) string {
	return fmt.Sprintf(auditTemplate, reportText)
}

// Decode parses a provider reply into an AnalysisResult. Replies wrapped in a
// markdown code fence are unwrapped first. Every failure wraps
// models.ErrInvalidResponse; schema violations also wrap models.ErrMalformedResult.
func Decode(text string) (models.AnalysisResult, error) {
	body := stripFence(text)
	if body == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: empty reply", models.ErrInvalidResponse)
	}

	result, err := models.DecodeAnalysisResult([]byte(body))
	if err != nil {
		if errors.Is(err, models.ErrMalformedResult) {
			return models.AnalysisResult{}, fmt.Errorf("%w: %w", models.ErrInvalidResponse, err)
		}
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", models.ErrInvalidResponse, err)
	}
	return result, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string ("json") up to the first newline.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
