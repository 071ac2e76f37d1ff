package services

// User-facing text. The event's staff and guests read Vietnamese.
const (
	MsgMissingID          = "ID khách mời là bắt buộc"
	MsgGuestNotFound      = "Không tìm thấy khách mời"
	MsgGuestNotFoundLoose = "Không tìm thấy khách mời (tìm theo mã, ID hoặc một phần email)"
	MsgMissingContactInfo = "Cần ít nhất một thông tin để tìm khách (tên, email hoặc số điện thoại)"
	MsgContactNotFound    = "Không tìm thấy khách mời với thông tin đã cung cấp"
	MsgEmailExists        = "Email này đã được sử dụng"
	MsgInvalidEmail       = "Email không hợp lệ"
	MsgInvalidPhone       = "Số điện thoại không hợp lệ"
	MsgStoreFailure       = "Lỗi hệ thống, vui lòng thử lại"

	MsgCreated        = "Thêm khách mời thành công"
	MsgUpdated        = "Cập nhật khách mời thành công"
	MsgDeleted        = "Xóa khách mời thành công"
	MsgCheckedIn      = "Check-in thành công"
	MsgCheckedOut     = "Check-out thành công"
	MsgAlreadyChecked = "Khách đã check-in từ trước"

	MsgMissingFile      = "Vui lòng chọn file CSV để upload"
	MsgNotCSV           = "Chỉ chấp nhận file CSV"
	MsgCSVUnreadable    = "Lỗi khi đọc file CSV"
	MsgImportDone       = "Import CSV hoàn tất"
	MsgImportBatchError = "Lỗi khi lưu dữ liệu vào database"
	MsgRowUnreadable    = "Không đọc được dữ liệu dòng (sai mã hóa UTF-8)"
	MsgRowMalformed     = "Dòng không đúng định dạng CSV"

	MsgMissingEmailFields = "Email và guestId là bắt buộc"
	MsgEmailSent          = "Đã gửi email thành công"
	MsgEmailFailed        = "Không thể gửi email"

	MsgBadCredentials = "Sai tên đăng nhập, mật khẩu hoặc câu trả lời bảo mật"
	MsgUnauthorized   = "Vui lòng đăng nhập"
)
