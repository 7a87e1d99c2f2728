package airbnb

// CSS selectors used by the extractors, in the order they are tried.
// Hashed class names change with every site redesign; keep the data-* and
// section-id selectors ahead of them.
var (
	titleSelectors = []string{
		`[data-section-id="TITLE_DEFAULT"] h1`,
		`[data-plugin-in-point-id="TITLE_DEFAULT"] h1`,
		`div._gfomxi > div > h1`,
		`div[data-testid="pdp-title"] h1`,
		`div.t1jojoys`,
		`h1`,
	}

	descriptionSelectors = []string{
		`[data-section-id="DESCRIPTION_DEFAULT"]`,
		`[data-plugin-in-point-id="DESCRIPTION_DEFAULT"]`,
		`[aria-labelledby="listing-title-descriptor"]`,
		`div[data-testid="pdp-description"]`,
		`div._1xib9j0i`,
		`div.h1vnndll`,
		`section[aria-label="Descrição"] span`,
		`div[data-section-id="DESCRIPTION_MODALLESS"] div`,
	}

	addressSelectors = []string{
		`div._ylefn59`,
		`div.t17lg2d1`,
		`a[href*="maps"]`,
		`div[data-section-id="LOCATION_DEFAULT"]`,
		`div[data-testid="pdp-location"]`,
	}

	capacityContainerSelectors = []string{
		`div._gfomxi > div`,
		`[data-section-id="OVERVIEW_DEFAULT_V2"]`,
		`[data-section-id="OVERVIEW_DEFAULT"]`,
		`[data-plugin-in-point-id="OVERVIEW_DEFAULT_V2"]`,
	}

	amenitySectionSelector = `[data-section-id="AMENITIES_DEFAULT"]`
	amenityItemSelector    = `div._19xnuo97, [data-testid="amenity-row"]`

	amenityAltSelectors = []string{
		`div[data-testid="amenities-section"] div`,
		`div[data-section-id="AMENITIES_MODALLESS"] div`,
		`div._8xfrhj`,
		`div.t1e04h6m`,
		`div._1byskwn`,
	}

	photoContainerSelectors = []string{
		`div[data-testid="pdp-images"]`,
		`div[data-section-id="PHOTOS_DEFAULT"]`,
		`div[data-section-id="HERO_DEFAULT"]`,
		`div._bb78gu4`,
		`div._vd6w38n`,
		`div._skzmth`,
	}

	captchaSelectors = []string{
		`iframe[src*="captcha"]`,
		`.g-recaptcha`,
		`#px-captcha`,
		`[data-sitekey]`,
	}
)

// ContentMarkerSelector must be present on a fully rendered listing page.
const ContentMarkerSelector = "h1"

// iconSelector detects the pictogram rendered next to an amenity.
const iconSelector = "svg"
