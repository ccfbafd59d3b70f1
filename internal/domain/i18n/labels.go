package i18n

// Label resolves a static translation key for the given language. Missing
// entries fall back to English, and unknown keys are returned verbatim so a
// broken key is visible instead of rendering blank.
func Label(lang Language, key string) string {
	if table, ok := labels[lang]; ok {
		if text, ok := table[key]; ok {
			return text
		}
	}
	if text, ok := labels[English][key]; ok {
		return text
	}
	return key
}

var labels = map[Language]map[string]string{
	English: {
		"feat_weather":       "Weather Planner",
		"feat_weather_desc":  "3-day forecast and farm work plan",
		"feat_water":         "Watering Guide",
		"feat_water_desc":    "When and how much to irrigate",
		"feat_trend":         "Market Trends",
		"feat_trend_desc":    "Price direction and selling tips",
		"feat_finance":       "Finance Estimator",
		"feat_finance_desc":  "Costs and income for one acre",
		"feat_sat":           "Satellite Index",
		"feat_sat_desc":      "Greenness index of your farm explained",
		"feat_risk":          "Risk Radar",
		"feat_risk_desc":     "Top farming risks right now",
		"feat_security":      "Farm Security",
		"feat_security_desc": "Low-cost theft prevention ideas",
		"feat_comm":          "Community Digest",
		"feat_comm_desc":     "Best tips shared by other farmers",
		"generated_insight":  "Generated Insight",
	},
	Hindi: {
		"feat_weather":       "मौसम योजना",
		"feat_weather_desc":  "3 दिन का पूर्वानुमान और कार्य योजना",
		"feat_water":         "सिंचाई गाइड",
		"feat_water_desc":    "कब और कितना पानी दें",
		"feat_trend":         "बाज़ार रुझान",
		"feat_trend_desc":    "भाव की दिशा और बेचने के सुझाव",
		"feat_finance":       "वित्तीय अनुमान",
		"feat_finance_desc":  "एक एकड़ की लागत और आय",
		"feat_sat":           "उपग्रह सूचकांक",
		"feat_sat_desc":      "खेत की हरियाली का सूचकांक",
		"feat_risk":          "जोखिम राडार",
		"feat_risk_desc":     "अभी के प्रमुख कृषि जोखिम",
		"feat_security":      "खेत सुरक्षा",
		"feat_security_desc": "कम लागत में चोरी से बचाव",
		"feat_comm":          "समुदाय सार",
		"feat_comm_desc":     "किसानों के साझा किए सुझाव",
		"generated_insight":  "तैयार की गई रिपोर्ट",
	},
}
