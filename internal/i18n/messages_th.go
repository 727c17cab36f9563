package i18n

// loadThaiMessages populates the Thai message catalog.
func loadThaiMessages() {
	th := messages[LangTH]

	// Welcome / goodbye
	th["welcome.title"] = "Nara - ระบบแชทบอท RAG"
	th["welcome.body"] = "ยินดีต้อนรับ! พิมพ์คำถามเพื่อเริ่มสนทนา หรือพิมพ์ /help เพื่อดูคำสั่งที่ใช้ได้"
	th["goodbye"] = "ขอบคุณที่ใช้งาน Nara แล้วพบกันใหม่"

	// Chat loop
	th["chat.prompt"] = "คุณ> "
	th["chat.assistant"] = "Nara"
	th["chat.thinking"] = "กำลังคิด..."
	th["chat.listening"] = "กำลังฟัง... (พูดได้เลย)"
	th["chat.rag.used"] = "ใช้ข้อมูลจากเอกสาร"
	th["chat.cleared"] = "ล้างประวัติการสนทนาแล้ว"

	// Modes
	th["mode.changed.text"] = "เปลี่ยนเป็นโหมดข้อความแล้ว"
	th["mode.changed.voice"] = "เปลี่ยนเป็นโหมดเสียงแล้ว"
	th["mode.invalid"] = "โหมดไม่ถูกต้อง ใช้ 'text' หรือ 'voice'"
	th["mode.voice.unavailable"] = "ฟีเจอร์เสียงยังไม่พร้อมใช้งาน"

	// Help
	th["help.title"] = "คำสั่งที่ใช้ได้:"
	th["help.help"] = "/help - แสดงความช่วยเหลือนี้"
	th["help.stats"] = "/stats - แสดงสถิติระบบ"
	th["help.mode"] = "/mode text|voice - เปลี่ยนโหมดการสนทนา"
	th["help.reload"] = "/reload - โหลดเอกสารเข้าระบบใหม่"
	th["help.clear"] = "/clear - ล้างประวัติการสนทนา"
	th["help.exit"] = "exit หรือ quit - ออกจากโปรแกรม"

	// Stats
	th["stats.title"] = "สถิติระบบ"
	th["stats.provider"] = "ผู้ให้บริการ LLM"
	th["stats.model"] = "โมเดล"
	th["stats.documents"] = "จำนวนเอกสาร"
	th["stats.history"] = "ความยาวการสนทนา"
	th["stats.mode"] = "โหมด"

	// Indexing
	th["index.loading"] = "กำลังโหลดเอกสาร..."
	th["index.done"] = "โหลดเอกสารสำเร็จ: %d ชิ้น"
	th["index.empty"] = "ไม่พบเอกสารในโฟลเดอร์"
	th["index.error"] = "เกิดข้อผิดพลาดในการโหลดเอกสาร: %v"

	// Errors
	th["error.generic"] = "เกิดข้อผิดพลาด: %v"
	th["error.config"] = "โหลดการตั้งค่าไม่สำเร็จ: %v"
	th["error.unknown.command"] = "ไม่รู้จักคำสั่ง: %s"
	th["error.stt"] = "ไม่สามารถแปลงเสียงได้: %v"
	th["error.tts"] = "ไม่สามารถอ่านออกเสียงได้: %v"
	th["error.rag.unavailable"] = "ระบบค้นหาเอกสารยังไม่พร้อมใช้งาน"
}
