package telegram

import "flood-report-bot/internal/domain/entity"

// texts строки интерфейса на одном языке
type texts struct {
	Start            string
	Help             string
	UnknownCommand   string
	SendPhoto        string
	NotNow           string
	InternalError    string
	ShareLocation    string
	LocationReceived string
	LocationGroup    string
	Analyzing        string
	Submitted        string
	NoteSaved        string
	NoteUsage        string
	CountUsage       string

	StatusDraft      string
	StatusAnalyzing  string
	StatusConfirming string
	StatusSubmitted  string

	Photo           string
	PhotoMissing    string
	Location        string
	LocationMissing string
	Urgency         string
	Vulnerable      string
	Yes             string
	No              string
	People          string
	Animals         string
	Estimate        string
	Description     string
	Reasoning       string
	Note            string

	BtnAnalyze       string
	BtnAnalyzeAnyway string
	BtnRemoveImage   string
	BtnClearLocation string
	BtnShareLocation string
	BtnSubmit        string
	BtnNewReport     string
	BtnPeople        string
	BtnAnimals       string
}

var uiTexts = map[entity.Language]texts{
	entity.LangThai: {
		Start: `🌊 ระบบรายงานสถานการณ์น้ำท่วม

📸 ส่งรูปถ่ายพื้นที่น้ำท่วม แชร์ตำแหน่ง แล้วกด "วิเคราะห์"
ระบบจะประเมินจำนวนผู้ประสบภัยและระดับความเร่งด่วน คุณสามารถแก้ไขก่อนส่งได้

/help — วิธีใช้งาน`,
		Help: `ℹ️ วิธีใช้งาน

1️⃣ ส่งรูปภาพ (JPEG, PNG หรือ WEBP ไม่เกิน 10 MB)
2️⃣ แชร์ตำแหน่งด้วยคำสั่ง /locate หรือปุ่ม 📎 → Location
3️⃣ กด "วิเคราะห์" และรอผล
4️⃣ ตรวจสอบและแก้ไขจำนวน แล้วกด "ส่งรายงาน"

📋 คำสั่ง:
/new — เริ่มรายงานใหม่
/locate — แชร์ตำแหน่ง
/people N — จำนวนผู้ประสบภัย
/animals N — จำนวนสัตว์
/note ข้อความ — หมายเหตุเพิ่มเติม`,
		UnknownCommand:   "❓ ไม่รู้จักคำสั่งนี้ ใช้ /help เพื่อดูวิธีใช้งาน",
		SendPhoto:        "📸 กรุณาส่งรูปถ่ายพื้นที่น้ำท่วม",
		NotNow:           "⏳ ไม่สามารถทำรายการนี้ได้ในขณะนี้",
		InternalError:    "⚠️ เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง",
		ShareLocation:    "📍 กดปุ่มด้านล่างเพื่อแชร์ตำแหน่งปัจจุบัน",
		LocationReceived: "📍 ได้รับตำแหน่งแล้ว",
		LocationGroup:    "📍 ในกลุ่มแชทไม่สามารถขอตำแหน่งได้ กรุณาส่งตำแหน่งผ่าน 📎 → Location",
		Analyzing:        "⏳ กำลังวิเคราะห์ภาพ...",
		Submitted:        "✅ ส่งรายงานเรียบร้อยแล้ว ขอบคุณที่ช่วยแจ้งเหตุ",
		NoteSaved:        "📝 บันทึกหมายเหตุแล้ว",
		NoteUsage:        "ใช้งาน: /note ข้อความ",
		CountUsage:       "ใช้งาน: /people 3 หรือ /animals 2",

		StatusDraft:      "📝 ร่างรายงาน",
		StatusAnalyzing:  "⏳ กำลังวิเคราะห์",
		StatusConfirming: "🔎 ตรวจสอบผลการวิเคราะห์",
		StatusSubmitted:  "✅ ส่งแล้ว",

		Photo:           "📸 รูปภาพ: แนบแล้ว",
		PhotoMissing:    "📸 รูปภาพ: ยังไม่มี",
		Location:        "📍 ตำแหน่ง",
		LocationMissing: "📍 ตำแหน่ง: ยังไม่ระบุ",
		Urgency:         "🚨 ความเร่งด่วน",
		Vulnerable:      "🧓 กลุ่มเปราะบาง",
		Yes:             "มี",
		No:              "ไม่มี",
		People:          "👤 ผู้ประสบภัย",
		Animals:         "🐾 สัตว์",
		Estimate:        "ประเมินโดยระบบ",
		Description:     "📄 รายละเอียด",
		Reasoning:       "💭 เหตุผล",
		Note:            "📝 หมายเหตุ",

		BtnAnalyze:       "🔍 วิเคราะห์",
		BtnAnalyzeAnyway: "▶️ ดำเนินการต่อโดยไม่มีตำแหน่ง",
		BtnRemoveImage:   "🗑 ลบรูป",
		BtnClearLocation: "❌ ล้างตำแหน่ง",
		BtnShareLocation: "📍 แชร์ตำแหน่ง",
		BtnSubmit:        "📤 ส่งรายงาน",
		BtnNewReport:     "🆕 รายงานใหม่",
		BtnPeople:        "👤",
		BtnAnimals:       "🐾",
	},
	entity.LangEnglish: {
		Start: `🌊 Flood situation reporting

📸 Send a photo of the flooded area, share your location and press "Analyse".
The service estimates people, animals and urgency; you can correct them before sending.

/help — how to use`,
		Help: `ℹ️ How to use

1️⃣ Send a photo (JPEG, PNG or WEBP, up to 10 MB)
2️⃣ Share your location with /locate or 📎 → Location
3️⃣ Press "Analyse" and wait
4️⃣ Check and correct the counts, then press "Submit"

📋 Commands:
/new — start a new report
/locate — share location
/people N — people needing help
/animals N — animals needing help
/note text — additional note`,
		UnknownCommand:   "❓ Unknown command. Use /help.",
		SendPhoto:        "📸 Please send a photo of the flooded area.",
		NotNow:           "⏳ This action is not available right now.",
		InternalError:    "⚠️ Something went wrong. Please try again.",
		ShareLocation:    "📍 Press the button below to share your current location.",
		LocationReceived: "📍 Location received.",
		LocationGroup:    "📍 Location cannot be requested in group chats. Send it via 📎 → Location.",
		Analyzing:        "⏳ Analysing the photo...",
		Submitted:        "✅ Report sent. Thank you for reporting.",
		NoteSaved:        "📝 Note saved.",
		NoteUsage:        "Usage: /note text",
		CountUsage:       "Usage: /people 3 or /animals 2",

		StatusDraft:      "📝 Draft report",
		StatusAnalyzing:  "⏳ Analysing",
		StatusConfirming: "🔎 Review the analysis",
		StatusSubmitted:  "✅ Submitted",

		Photo:           "📸 Photo: attached",
		PhotoMissing:    "📸 Photo: none",
		Location:        "📍 Location",
		LocationMissing: "📍 Location: not set",
		Urgency:         "🚨 Urgency",
		Vulnerable:      "🧓 Vulnerable people",
		Yes:             "yes",
		No:              "no",
		People:          "👤 People",
		Animals:         "🐾 Animals",
		Estimate:        "estimated",
		Description:     "📄 Description",
		Reasoning:       "💭 Reasoning",
		Note:            "📝 Note",

		BtnAnalyze:       "🔍 Analyse",
		BtnAnalyzeAnyway: "▶️ Continue without location",
		BtnRemoveImage:   "🗑 Remove photo",
		BtnClearLocation: "❌ Clear location",
		BtnShareLocation: "📍 Share location",
		BtnSubmit:        "📤 Submit",
		BtnNewReport:     "🆕 New report",
		BtnPeople:        "👤",
		BtnAnimals:       "🐾",
	},
}

func textsFor(lang entity.Language) texts {
	if t, ok := uiTexts[lang]; ok {
		return t
	}
	return uiTexts[entity.LangThai]
}
