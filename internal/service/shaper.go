package service

import "github.com/intelvestor/gateway/internal/model"

// SocialInsightsCaption replaces the model explanation on social insights.
const SocialInsightsCaption = "Social insights and sentiment analysis from recent news and social media."

// ShapeSocialInsights strips prediction output from a news-sentiment reply
// so only sentiment reaches the client. Applying it twice is the same as
// applying it once.
func ShapeSocialInsights(resp *model.InferenceResponse) *model.InferenceResponse {
	if resp == nil {
		return nil
	}
	resp.Predictions = nil
	resp.Shap = nil
	resp.Explanation = SocialInsightsCaption
	return resp
}
