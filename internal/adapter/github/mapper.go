package github

import "github.com/bkyoung/test-reporter/internal/domain"

// maxAnnotationsPerRequest is the GitHub Checks API cap on annotations in a
// single check-run request.
const maxAnnotationsPerRequest = 50

// BuildCheckRunRequest maps the rendered check payload to the wire format.
// Annotations beyond the API cap are dropped; the summary counts still reflect
// every failure, so nothing is silently lost from the report text.
func BuildCheckRunRequest(rc domain.RequestContext, check domain.Check) CreateCheckRunRequest {
	return CreateCheckRunRequest{
		Name:       check.Name,
		HeadSHA:    rc.HeadSHA,
		Status:     StatusCompleted,
		Conclusion: string(check.Conclusion),
		Output: &CheckRunOutput{
			Title:       check.Title,
			Summary:     check.Summary,
			Text:        check.Text,
			Annotations: mapAnnotations(check.Annotations),
		},
	}
}

func mapAnnotations(annotations []domain.Annotation) []CheckRunAnnotation {
	if len(annotations) == 0 {
		return nil
	}

	capped := annotations
	if len(capped) > maxAnnotationsPerRequest {
		capped = capped[:maxAnnotationsPerRequest]
	}

	mapped := make([]CheckRunAnnotation, 0, len(capped))
	for _, a := range capped {
		mapped = append(mapped, CheckRunAnnotation{
			Path:            a.Path,
			StartLine:       a.StartLine,
			EndLine:         a.EndLine,
			AnnotationLevel: string(a.Level),
			Message:         a.Message,
			Title:           a.Title,
		})
	}
	return mapped
}
