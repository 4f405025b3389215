package ports

import "os"

// FileSystem provides the file system operations the provisioner needs:
// reading system files, writing whole files, and appending to host
// configuration files such as /etc/fstab and /etc/crontab.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	AppendFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
}
