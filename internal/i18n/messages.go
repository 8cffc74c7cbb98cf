// Package i18n provides the English/Welsh message table for user-facing
// text. Keys mirror the upstream service's locale keys so operators can
// cross-reference messages between the two systems.
package i18n

// messages holds the per-language string tables.
var messages = map[string]map[string]string{
	"en": {
		"loginInvalidCredentials": "Enter a valid username and password",
		"loginSessionError":       "There was a problem signing you in. Please try again.",
		"usernameRequired":        "Enter a username",
		"emailInvalid":            "Enter an email address in the correct format, like name@example.com",
		"dobInvalid":              "Enter a valid date of birth in the past",
		"passwordRequired":        "Enter a password",
		"passwordCriteria":        "Password must be at least 8 characters and include an uppercase letter, a lowercase letter, a number and a symbol",
		"confirmPasswordRequired": "Confirm your password",
		"passwordsMismatch":       "Passwords do not match",
		"registerError":           "There was a problem creating your account. Please try again.",
		"sessionExpired":          "Your session has expired. Please sign in again.",
		"accountUpdateError":      "There was a problem updating your account. Please try again.",
		"accountLoadError":        "Error retrieving account details.",
		"forgotPasswordError":     "There was a problem sending your one-time password. Please try again.",
		"noEmailInSession":        "We could not find your email address. Please start again.",
		"otpRequired":             "Enter the one-time password",
		"otpVerifyError":          "The one-time password is invalid or has expired.",
		"resetSessionMissing":     "Your reset session has expired. Please start again.",
		"resetError":              "There was a problem resetting your password. Please try again.",
		"chatHistoryError":        "Unable to load chat history at this time.",
	},
	"cy": {
		"loginInvalidCredentials": "Rhowch enw defnyddiwr a chyfrinair dilys",
		"loginSessionError":       "Roedd problem wrth eich mewngofnodi. Rhowch gynnig arall arni.",
		"usernameRequired":        "Rhowch enw defnyddiwr",
		"emailInvalid":            "Rhowch gyfeiriad e-bost yn y fformat cywir, fel enw@enghraifft.com",
		"dobInvalid":              "Rhowch ddyddiad geni dilys yn y gorffennol",
		"passwordRequired":        "Rhowch gyfrinair",
		"passwordCriteria":        "Rhaid i'r cyfrinair fod yn 8 nod o leiaf a chynnwys priflythyren, llythyren fach, rhif a symbol",
		"confirmPasswordRequired": "Cadarnhewch eich cyfrinair",
		"passwordsMismatch":       "Nid yw'r cyfrineiriau'n cyfateb",
		"registerError":           "Roedd problem wrth greu eich cyfrif. Rhowch gynnig arall arni.",
		"sessionExpired":          "Mae eich sesiwn wedi dod i ben. Mewngofnodwch eto.",
		"accountUpdateError":      "Roedd problem wrth ddiweddaru eich cyfrif. Rhowch gynnig arall arni.",
		"accountLoadError":        "Gwall wrth nôl manylion y cyfrif.",
		"forgotPasswordError":     "Roedd problem wrth anfon eich cyfrinair untro. Rhowch gynnig arall arni.",
		"noEmailInSession":        "Ni allem ddod o hyd i'ch cyfeiriad e-bost. Dechreuwch eto.",
		"otpRequired":             "Rhowch y cyfrinair untro",
		"otpVerifyError":          "Mae'r cyfrinair untro yn annilys neu wedi dod i ben.",
		"resetSessionMissing":     "Mae eich sesiwn ailosod wedi dod i ben. Dechreuwch eto.",
		"resetError":              "Roedd problem wrth ailosod eich cyfrinair. Rhowch gynnig arall arni.",
		"chatHistoryError":        "Ni ellir llwytho hanes y sgwrs ar hyn o bryd.",
	},
}

// T looks up a message key for a language. Unknown languages fall back to
// English; unknown keys return the key itself so a missing translation is
// visible rather than silent.
func T(lang, key string) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages["en"][key]; ok {
		return msg
	}
	return key
}
