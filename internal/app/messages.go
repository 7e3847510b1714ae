package app

// User-facing messages. The frontend matches on these exact strings, so
// they change only together with it.
const (
	msgDuplicateEmail  = "이미 존재하는 이메일입니다."
	msgNotFoundUser    = "유저를 찾을 수 없습니다."
	msgNotFoundWriting = "글을 찾을 수 없습니다."
	msgNotFoundBlock   = "블록을 찾을 수 없습니다."
	msgInvalidLogin    = "이메일 혹은 비밀번호가 잘못되었습니다."

	msgInvalidUserID    = "잘못된 형식의 user id입니다."
	msgInvalidWritingID = "잘못된 형식의 writing id입니다."
	msgInvalidBlockID   = "잘못된 형식의 block id입니다."

	msgInvalidStateQuery = "query는 editing, done 중에 하나여야 합니다."
	msgInvalidEmail      = "잘못된 형식의 email입니다."
	msgInvalidJSON       = "잘못된 JSON 형식입니다."

	msgEmailRequired     = "email(을)를 입력해주세요."
	msgPasswordRequired  = "비밀번호(을)를 입력해주세요."
	msgNameRequired      = "이름(을)를 입력해주세요."
	msgBlockTypeRequired = "블록 타입(을)를 입력해주세요."
	msgBlockListRequired = "블록 리스트(을)를 입력해주세요."

	msgPasswordString = "비밀번호(은)는 문자열이어야 합니다."
	msgNameString     = "이름(은)는 문자열이어야 합니다."
	msgTitleString    = "title(은)는 문자열이어야 합니다."

	msgParagraphsArray = "paragraphs(은)는 배열이어야 합니다."
	msgIsDoneBool      = "isDone은 boolean이어야 합니다."

	msgTitleRange    = "title은 100글자 이하여야 합니다."
	msgPasswordRange = "비밀번호는 6자 이상 20자 이하여야 합니다."
	msgNameRange     = "이름은 20자 이하여야 합니다."

	msgBlockType = "block 타입은 P, R, E, PR, RE, EP, PRE, REP, PREP 중에 하나여야 합니다."

	msgBlocksForbidden = "blocks 프로퍼티는 입력이 불가합니다. blocks 업데이트는 PUT /users/:id/writings/:id/blocks를 이용해야 합니다."

	msgServerError = "Server Error"
)
