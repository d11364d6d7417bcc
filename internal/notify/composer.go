package notify

import (
	"fmt"
)

// MessageKind selects between the outage and restoration template pair.
type MessageKind string

const (
	KindOutage      MessageKind = "outage"
	KindRestoration MessageKind = "restored"
)

// RecipientSample is the representative customer whose name and account id
// appear in the previewed text. It is illustrative only; the actual send
// list is resolved area-wide by the directory.
type RecipientSample struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

// Languages flags which bodies to render. Tamil always comes first when
// both are enabled.
type Languages struct {
	Tamil   bool `json:"tamil"`
	English bool `json:"english"`
}

// ComposeRequest carries everything BuildMessage needs. It is rebuilt on
// every relevant change and never stored.
type ComposeRequest struct {
	Area      string          `json:"area"`
	Kind      MessageKind     `json:"msg_type"`
	Languages Languages       `json:"languages"`
	Window    TimeWindow      `json:"-"`
	Sample    RecipientSample `json:"sample"`
}

const (
	placeholderName    = "Customer"
	placeholderAccount = "SCV-XXXXX"
)

// BuildMessage renders the final bilingual message text. It is pure and
// never fails: an empty area, missing sample, or empty window all degrade
// to placeholders. With no language enabled it returns the empty string,
// which callers must treat as unsendable.
func BuildMessage(req ComposeRequest) string {
	area := req.Area
	if area == "" {
		area = "your area"
	}
	name := req.Sample.Name
	if name == "" {
		name = placeholderName
	}
	account := req.Sample.AccountID
	if account == "" {
		account = placeholderAccount
	}
	eta := req.Window.DisplayRange()
	if eta == "" {
		eta = "no ETA"
	}

	var ta, en string
	if req.Languages.Tamil {
		if req.Kind == KindOutage {
			ta = fmt.Sprintf("வணக்கம் *%s*,\n%s பகுதியில் உள்ள உங்கள் KGM Cables இணைப்பு (கணக்கு : %s) சேவை தடையால் பாதிக்கப்பட்டுள்ளது.\nமதிப்பிடப்பட்ட செயலிழப்பு நேரம் *%s*.\nசேவை மீண்டும் இயங்கும்போது தகவல் தரப்படும்.\n- கேஜிஎம் கேபிள்ஸ்",
				name, area, account, eta)
		} else {
			ta = fmt.Sprintf("வணக்கம் *%s*,\n%s பகுதியில் உள்ள உங்கள் KGM Cables இணைப்பில் (கணக்கு : %s) சேவை மீண்டும் இயங்குகிறது.\nஉங்கள் பொறுமைக்கு நன்றி.\n- கேஜிஎம் கேபிள்ஸ்",
				name, area, account)
		}
	}
	if req.Languages.English {
		if req.Kind == KindOutage {
			en = fmt.Sprintf("Hi *%s*,\nYour KGM Cables connection (Account : %s) in %s is affected by a service outage.\nEstimated downtime *%s*.\nWe’ll message you once it’s restored.\n- KGM Cables",
				name, account, area, eta)
		} else {
			en = fmt.Sprintf("Hi *%s*,\nService has been restored for your KGM Cables connection (Account : %s) in %s.\nThank you for your patience.\n- KGM Cables",
				name, account, area)
		}
	}

	if ta != "" && en != "" {
		return ta + "\n\n" + en
	}
	if ta != "" {
		return ta
	}
	return en
}
