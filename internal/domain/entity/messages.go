package entity

// Language язык сообщений пользователю
type Language string

const (
	LangThai    Language = "th"
	LangEnglish Language = "en"
)

var errorMessages = map[Language]map[ErrorCode]string{
	LangThai: {
		CodeNoImageSelected:             "กรุณาอัปโหลดรูปภาพก่อน",
		CodeImageTooLarge:               "ไฟล์รูปภาพมีขนาดใหญ่เกินไป",
		CodeUnsupportedImageType:        "รองรับเฉพาะไฟล์ JPEG, PNG หรือ WEBP",
		CodeLocationRequired:            "ยังไม่ได้ระบุตำแหน่ง GPS ดำเนินการต่อหรือไม่?",
		CodeLocationUnsupported:         "อุปกรณ์ของคุณไม่รองรับการระบุตำแหน่ง",
		CodeLocationDeniedOrUnavailable: "ไม่สามารถเข้าถึงตำแหน่งได้ กรุณาเปิด GPS",
		CodeEmptyResponse:               "ไม่สามารถวิเคราะห์รูปภาพได้ กรุณาลองใหม่อีกครั้ง",
		CodeMalformedResponse:           "ไม่สามารถวิเคราะห์รูปภาพได้ กรุณาลองใหม่อีกครั้ง",
		CodeServiceError:                "ไม่สามารถวิเคราะห์รูปภาพได้ กรุณาลองใหม่อีกครั้ง",
		CodeSubmitFailed:                "ส่งข้อมูลไม่สำเร็จ กรุณาลองใหม่อีกครั้ง",
	},
	LangEnglish: {
		CodeNoImageSelected:             "Please upload a photo first.",
		CodeImageTooLarge:               "The image file is too large.",
		CodeUnsupportedImageType:        "Only JPEG, PNG or WEBP images are supported.",
		CodeLocationRequired:            "GPS location is not set. Continue anyway?",
		CodeLocationUnsupported:         "Your device does not support location sharing.",
		CodeLocationDeniedOrUnavailable: "Could not get your location. Please turn on GPS.",
		CodeEmptyResponse:               "Could not analyse the photo. Please try again.",
		CodeMalformedResponse:           "Could not analyse the photo. Please try again.",
		CodeServiceError:                "Could not analyse the photo. Please try again.",
		CodeSubmitFailed:                "Could not send the report. Please try again.",
	},
}

// ParseLanguage возвращает язык по коду, по умолчанию тайский
func ParseLanguage(code string) Language {
	if _, ok := errorMessages[Language(code)]; ok {
		return Language(code)
	}
	return LangThai
}

// Message возвращает текст ошибки для пользователя
func (c ErrorCode) Message(lang Language) string {
	if c == "" {
		return ""
	}
	if msg, ok := errorMessages[lang][c]; ok {
		return msg
	}
	return errorMessages[LangThai][c]
}
