package scans

// AdditiveGlossary explains why each commonly flagged additive is a concern.
// Static read-only mapping used by the meta endpoint; keys match the additive
// names the model tends to emit in red_flags.
var AdditiveGlossary = map[string]string{
	"Soy Lecithin":             "An emulsifier derived from soy, often GMO. May cause digestive issues in sensitive individuals.",
	"Carrageenan":              "A seaweed-derived thickener linked to gut inflammation in some studies.",
	"High Fructose Corn Syrup": "Highly processed sugar linked to obesity, insulin resistance, and metabolic issues.",
	"HFCS":                     "High Fructose Corn Syrup - highly processed sugar linked to metabolic issues.",
	"Sodium Nitrite":           "A preservative in processed meats associated with increased cancer risk.",
	"Artificial Colors":        "Synthetic dyes linked to hyperactivity in children and potential carcinogenic effects.",
	"BHA":                      "Butylated hydroxyanisole - a preservative classified as a possible human carcinogen.",
	"BHT":                      "Butylated hydroxytoluene - a synthetic antioxidant with potential endocrine-disrupting properties.",
	"Polysorbate 80":           "An emulsifier that may disrupt gut microbiome and contribute to metabolic syndrome.",
	"Xanthan Gum":              "A thickener that can cause digestive distress in large amounts.",
	"Guar Gum":                 "A thickener that may cause bloating and digestive issues in sensitive individuals.",
	"Aspartame":                "An artificial sweetener with contested health effects; some research links it to neurological issues.",
	"Sucralose":                "An artificial sweetener that may negatively alter gut microbiome composition.",
	"Sodium Benzoate":          "A preservative that can form benzene (a carcinogen) when combined with vitamin C.",
	"TBHQ":                     "Tertiary butylhydroquinone - a preservative with potential immune and neurological effects.",
	"Maltodextrin":             "A highly processed starch with a higher glycemic index than table sugar.",
	"Artificial Flavors":       "Vague term masking hundreds of synthetic chemicals used to simulate natural taste.",
	"Modified Starch":          "Chemically altered starch that may cause digestive issues and blood sugar spikes.",
}
